// Package wizard walks a visitor through the four booking steps: contact
// info, schedule, project details and review.
package wizard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cinecraft/internal/domain/models"
	"cinecraft/internal/upload"
	"cinecraft/internal/utils"
	"cinecraft/internal/validation"
)

const (
	StepInfo = iota + 1
	StepSchedule
	StepDetails
	StepReview

	Steps = StepReview

	// MaxAttachmentMB bounds each attachment added on the details step.
	MaxAttachmentMB = 10
)

var stepTitles = [Steps]string{"Your Info", "Schedule", "Project Details", "Review"}

// TimeSlot is one bookable start time.
type TimeSlot struct {
	Value string
	Label string
}

// TimeSlots lists the hourly slots 09:00 through 17:00.
func TimeSlots() []TimeSlot {
	out := make([]TimeSlot, 0, 9)
	for h := 9; h <= 17; h++ {
		t := time.Date(2000, 1, 1, h, 0, 0, 0, time.UTC)
		out = append(out, TimeSlot{Value: t.Format("15:04"), Label: t.Format("3:04 PM")})
	}
	return out
}

// Estimate is the price shown once a service is picked.
type Estimate struct {
	Min      float64
	Max      float64
	Duration string
}

type Attachment struct {
	Name        string
	Size        int64
	ContentType string
	// Preview is a data URL, set for images only.
	Preview string
}

// LoadAttachment sniffs the content type of r and, for images within the
// attachment limit, renders a preview. The returned reader replays the whole
// body for the upload.
func LoadAttachment(name string, size int64, r io.Reader) (Attachment, io.Reader, error) {
	ct, body, err := upload.Detect(r)
	if err != nil {
		return Attachment{}, nil, err
	}
	a := Attachment{Name: name, Size: size, ContentType: ct}
	if !strings.HasPrefix(ct, "image/") || size > MaxAttachmentMB*upload.MB {
		return a, body, nil
	}
	var seen bytes.Buffer
	if preview, err := upload.Preview(io.TeeReader(body, &seen), ct, MaxAttachmentMB*upload.MB); err == nil {
		a.Preview = preview
	}
	return a, io.MultiReader(&seen, body), nil
}

// Submitter sends the finished booking (client.BookingsAPI satisfies it).
type Submitter interface {
	Submit(ctx context.Context, in models.BookingInput) (models.Booking, error)
}

type Wizard struct {
	Services []models.Service

	step        int
	form        models.BookingInput
	errors      map[string]string
	estimate    *Estimate
	attachments []Attachment
}

func New(services []models.Service) *Wizard {
	return &Wizard{Services: services, step: StepInfo, errors: map[string]string{}}
}

func (w *Wizard) Step() int { return w.step }

func (w *Wizard) Title() string { return stepTitles[w.step-1] }

// Progress is the bar width in percent: 0, 33.33, 66.66, 99.99.
func (w *Wizard) Progress() float64 { return float64(w.step-1) * 33.33 }

func (w *Wizard) Errors() map[string]string {
	out := make(map[string]string, len(w.errors))
	for k, v := range w.errors {
		out[k] = v
	}
	return out
}

func (w *Wizard) Estimate() *Estimate { return w.estimate }

func (w *Wizard) Attachments() []Attachment {
	return append([]Attachment(nil), w.attachments...)
}

// Set updates one form field and clears its error. Setting service_id
// also refreshes the price estimate.
func (w *Wizard) Set(field, value string) error {
	value = strings.TrimSpace(value)
	switch field {
	case "name":
		w.form.Name = value
	case "email":
		w.form.Email = value
	case "phone":
		w.form.Phone = value
	case "date":
		w.form.Date = value
	case "time":
		w.form.Time = value
	case "message":
		w.form.Message = value
	case "image":
		w.form.Image = value
	case "service_id":
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid service id %q", value)
		}
		if err := w.SelectService(id); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	delete(w.errors, field)
	return nil
}

// SelectService picks a service from the loaded catalog.
func (w *Wizard) SelectService(id int64) error {
	for _, s := range w.Services {
		if s.ID == id {
			w.form.ServiceID = &id
			w.estimate = &Estimate{Min: s.Price, Max: s.Price, Duration: s.Duration}
			delete(w.errors, "service_id")
			return nil
		}
	}
	return fmt.Errorf("service %d is not available", id)
}

func (w *Wizard) selectedService() *models.Service {
	if w.form.ServiceID == nil {
		return nil
	}
	for i := range w.Services {
		if w.Services[i].ID == *w.form.ServiceID {
			return &w.Services[i]
		}
	}
	return nil
}

func (w *Wizard) checkStep(step int, errs map[string]string) {
	switch step {
	case StepInfo:
		if w.form.Name == "" {
			errs["name"] = "Name is required"
		}
		if w.form.Email == "" {
			errs["email"] = "Email is required"
		} else if !validation.IsEmail(w.form.Email) {
			errs["email"] = "Email is invalid"
		}
		if w.form.Phone == "" {
			errs["phone"] = "Phone number is required"
		}
	case StepSchedule:
		if w.form.ServiceID == nil {
			errs["service_id"] = "Please select a service"
		}
		if w.form.Date == "" {
			errs["date"] = "Date is required"
		}
		if w.form.Time == "" {
			errs["time"] = "Time is required"
		}
	}
}

// ValidateStep checks one step's fields; the errors replace the previous set.
func (w *Wizard) ValidateStep(step int) bool {
	errs := map[string]string{}
	w.checkStep(step, errs)
	w.errors = errs
	return len(errs) == 0
}

// ValidateAll runs every step and also rejects dates before today.
func (w *Wizard) ValidateAll(now time.Time) bool {
	errs := map[string]string{}
	for step := StepInfo; step <= Steps; step++ {
		w.checkStep(step, errs)
	}
	if _, ok := errs["date"]; !ok {
		past, err := utils.DateInPast(w.form.Date, now)
		switch {
		case err != nil:
			errs["date"] = "Date must be YYYY-MM-DD"
		case past:
			errs["date"] = validation.MsgPastDate
		}
	}
	w.errors = errs
	return len(errs) == 0
}

// Next advances only when the current step validates.
func (w *Wizard) Next() bool {
	if w.step >= Steps || !w.ValidateStep(w.step) {
		return false
	}
	w.step++
	return true
}

func (w *Wizard) Back() {
	if w.step > StepInfo {
		w.step--
	}
}

// AddAttachment accepts images, documents and videos up to 10MB.
func (w *Wizard) AddAttachment(a Attachment) error {
	if err := upload.ValidateFileSize(a.Size, MaxAttachmentMB); err != nil {
		return fmt.Errorf("File %s is too large. Maximum size is %dMB. Current size: %s",
			a.Name, MaxAttachmentMB, upload.FormatFileSize(a.Size))
	}
	if err := upload.ValidateFileType(a.ContentType); err != nil {
		return fmt.Errorf("File %s is not a supported format. Supported formats: Images (JPG, PNG, GIF, WebP), Documents (PDF, DOC, DOCX, TXT)", a.Name)
	}
	w.attachments = append(w.attachments, a)
	return nil
}

func (w *Wizard) RemoveAttachment(i int) {
	if i < 0 || i >= len(w.attachments) {
		return
	}
	w.attachments = append(w.attachments[:i], w.attachments[i+1:]...)
}

// Input is the booking payload built from the form.
func (w *Wizard) Input() models.BookingInput {
	in := w.form
	if in.ServiceID != nil {
		id := *in.ServiceID
		in.ServiceID = &id
	}
	return in
}

// Summary lists the review step lines.
func (w *Wizard) Summary() []string {
	lines := []string{
		"Name: " + w.form.Name,
		"Email: " + w.form.Email,
		"Phone: " + w.form.Phone,
	}
	if s := w.selectedService(); s != nil {
		lines = append(lines, "Service: "+s.Title)
	}
	lines = append(lines, "Date: "+w.form.Date, "Time: "+w.form.Time)
	if w.estimate != nil {
		lines = append(lines, "Price: "+utils.FormatPrice(w.estimate.Min))
		if w.estimate.Duration != "" {
			lines = append(lines, "Duration: "+w.estimate.Duration)
		}
	}
	if w.form.Message != "" {
		lines = append(lines, "Details: "+w.form.Message)
	}
	if w.form.Image != "" {
		lines = append(lines, "Attachment: "+w.form.Image)
	}
	return lines
}

// Submit validates everything, sends the booking and resets on success.
func (w *Wizard) Submit(ctx context.Context, sub Submitter, now time.Time) (models.Booking, error) {
	if !w.ValidateAll(now) {
		return models.Booking{}, fmt.Errorf("please fix the highlighted fields")
	}
	b, err := sub.Submit(ctx, w.Input())
	if err != nil {
		return models.Booking{}, err
	}
	w.Reset()
	return b, nil
}

// Reset clears the form and returns to step 1; the catalog is kept.
func (w *Wizard) Reset() {
	w.step = StepInfo
	w.form = models.BookingInput{}
	w.errors = map[string]string{}
	w.estimate = nil
	w.attachments = nil
}
