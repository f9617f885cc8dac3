package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"cinecraft/internal/client"
	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"
	"cinecraft/internal/notify"
	"cinecraft/internal/upload"
	"cinecraft/internal/utils"
	"cinecraft/internal/wizard"
)

var errUsage = errors.New("usage: cinecraftctl [-api URL] [-session FILE] <login|logout|services|bookings|stats|confirm|feedback|approve|watch|book|upload|export|pdf> [args]")

type app struct {
	api    *client.Client
	in     *bufio.Reader
	out    io.Writer
	now    func() time.Time
	stateD string
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("cinecraftctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	apiURL := fs.String("api", envOr("CINECRAFT_API", client.DefaultBaseURL), "API base URL")
	session := fs.String("session", envOr("CINECRAFT_SESSION", client.DefaultTokenPath()), "session file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	a := &app{
		api:    client.New(*apiURL, &client.FileTokenStore{Path: *session}),
		in:     bufio.NewReader(stdin),
		out:    stdout,
		now:    time.Now,
		stateD: filepath.Dir(*session),
	}
	a.api.OnUnauthorized = func() {
		fmt.Fprintln(a.out, "Session expired. Run `cinecraftctl login` again.")
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.api.Auth().Logout()
	case "services":
		return a.services(ctx)
	case "bookings":
		return a.bookings(ctx, rest)
	case "stats":
		return a.stats(ctx)
	case "confirm":
		return a.confirm(ctx, rest)
	case "feedback":
		return a.feedback(ctx, rest)
	case "approve":
		return a.approve(ctx, rest)
	case "watch":
		return a.watch(ctx, rest)
	case "book":
		return a.book(ctx)
	case "upload":
		return a.upload(ctx, rest)
	case "export":
		return a.export(ctx, rest)
	case "pdf":
		return a.pdf(ctx, rest)
	}
	return errUsage
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func parseID(rest []string) (int64, error) {
	if len(rest) == 0 {
		return 0, errors.New("missing id")
	}
	id, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", rest[0])
	}
	return id, nil
}

func statusFlag(name string, rest []string) (string, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	status := fs.String("status", "", "filter by status")
	if err := fs.Parse(rest); err != nil {
		return "", nil, err
	}
	return strings.ToLower(*status), fs.Args(), nil
}

func (a *app) login(ctx context.Context, rest []string) error {
	email := ""
	if len(rest) > 0 {
		email = rest[0]
	} else {
		var err error
		if email, err = a.prompt("Email"); err != nil {
			return err
		}
	}
	password, err := a.prompt("Password")
	if err != nil {
		return err
	}
	s, err := a.api.Auth().Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", s.User.Name, s.User.Role)
	return nil
}

func (a *app) services(ctx context.Context) error {
	list, err := a.api.Services().List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPRICE\tDURATION")
	for _, s := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Title, s.Category, utils.FormatPrice(s.Price), s.Duration)
	}
	return tw.Flush()
}

func (a *app) bookings(ctx context.Context, rest []string) error {
	status, _, err := statusFlag("bookings", rest)
	if err != nil {
		return err
	}
	list, err := a.api.Bookings().List(ctx, domain.ListFilter{Status: status})
	if err != nil {
		return err
	}
	now := a.now()
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSERVICE\tDATE\tTIME\tSTATUS\tFILE\tCREATED")
	for _, b := range list {
		file := upload.FileType(b.Image)
		if file == "" {
			file = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", b.ID, b.Name, b.ServiceTitle, b.Date, b.Time, b.Status, file,
			notify.TimeAgo(b.CreatedAt, now))
	}
	return tw.Flush()
}

func (a *app) stats(ctx context.Context) error {
	st, err := a.api.Bookings().Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Total: %d\nPending: %d\nConfirmed: %d\nCompleted: %d\nCancelled: %d\nWith files: %d (%d%%)\n",
		st.Total, st.Pending, st.Confirmed, st.Completed, st.Cancelled, st.WithImage, st.UploadRate)
	return nil
}

func (a *app) confirm(ctx context.Context, rest []string) error {
	id, err := parseID(rest)
	if err != nil {
		return err
	}
	b, err := a.api.Bookings().Confirm(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Booking #%d is now %s\n", b.ID, b.Status)
	return nil
}

func (a *app) feedback(ctx context.Context, rest []string) error {
	status, _, err := statusFlag("feedback", rest)
	if err != nil {
		return err
	}
	list, err := a.api.Feedback().List(ctx, domain.ListFilter{Status: status})
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tRATING\tCATEGORY\tSTATUS\tMESSAGE")
	for _, f := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", f.ID, f.Name, strings.Repeat("*", f.Rating), f.ServiceCategory, f.Status,
			truncate(f.Message, 48))
	}
	return tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func (a *app) approve(ctx context.Context, rest []string) error {
	id, err := parseID(rest)
	if err != nil {
		return err
	}
	fb, err := a.api.Feedback().UpdateStatus(ctx, id, models.FeedbackApproved)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Feedback #%d is now %s\n", fb.ID, fb.Status)
	return nil
}

// watch polls pending bookings and prints new ones until interrupted.
func (a *app) watch(ctx context.Context, rest []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	interval := fs.Duration("interval", notify.DefaultPollInterval, "poll interval")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	p := &notify.Poller{
		Source:      a.api.BookingSource(),
		Checkpoints: notify.FileCheckpointStore{Dir: a.stateD},
		Key:         "cli",
		Interval:    *interval,
		OnNew: func(added []notify.Notification, unread int) {
			now := a.now()
			for _, n := range added {
				fmt.Fprintf(a.out, "[%s] %s: %s\n", notify.TimeAgo(n.Time, now), n.Title, n.Message)
			}
			fmt.Fprintf(a.out, "%d unread\n", unread)
		},
	}
	fmt.Fprintf(a.out, "Watching for new bookings every %s (Ctrl+C to stop)\n", *interval)
	err := p.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return p.MarkRead(context.WithoutCancel(ctx))
	}
	return err
}

// book runs the four-step wizard on the terminal.
func (a *app) book(ctx context.Context) error {
	services, err := a.api.Services().List(ctx)
	if err != nil {
		return err
	}
	w := wizard.New(services)
	fields := map[int][][2]string{
		wizard.StepInfo:     {{"name", "Name"}, {"email", "Email"}, {"phone", "Phone"}},
		wizard.StepSchedule: {{"service_id", "Service ID"}, {"date", "Date (YYYY-MM-DD)"}, {"time", "Time (HH:MM)"}},
		wizard.StepDetails:  {{"message", "Project details"}},
	}

	for w.Step() < wizard.StepReview {
		fmt.Fprintf(a.out, "\nStep %d of %d: %s (%.0f%%)\n", w.Step(), wizard.Steps, w.Title(), w.Progress())
		switch w.Step() {
		case wizard.StepSchedule:
			for _, s := range services {
				fmt.Fprintf(a.out, "  %d) %s - %s\n", s.ID, s.Title, utils.FormatPrice(s.Price))
			}
			slots := make([]string, 0, 9)
			for _, s := range wizard.TimeSlots() {
				slots = append(slots, s.Value)
			}
			fmt.Fprintf(a.out, "  Times: %s\n", strings.Join(slots, ", "))
		}
		for _, f := range fields[w.Step()] {
			v, err := a.prompt(f[1])
			if err != nil {
				return err
			}
			if err := w.Set(f[0], v); err != nil {
				fmt.Fprintln(a.out, " ", err)
			}
		}
		if w.Step() == wizard.StepDetails {
			if err := a.attach(ctx, w); err != nil {
				return err
			}
		}
		if !w.Next() {
			for field, msg := range w.Errors() {
				fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
			}
		}
	}

	fmt.Fprintf(a.out, "\nStep %d of %d: %s\n", w.Step(), wizard.Steps, w.Title())
	for _, line := range w.Summary() {
		fmt.Fprintln(a.out, " ", line)
	}
	ok, err := a.prompt("Submit booking? (y/N)")
	if err != nil {
		return err
	}
	if !strings.EqualFold(ok, "y") {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	b, err := w.Submit(ctx, a.api.Bookings(), a.now())
	if err != nil {
		for field, msg := range w.Errors() {
			fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
		}
		return err
	}
	fmt.Fprintf(a.out, "Booking #%d submitted! We'll get back to you soon.\n", b.ID)
	return nil
}

func (a *app) attach(ctx context.Context, w *wizard.Wizard) error {
	path, err := a.prompt("Attachment path (optional)")
	if err != nil || path == "" {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(a.out, " ", err)
		return nil
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	att, body, err := wizard.LoadAttachment(filepath.Base(path), info.Size(), f)
	if err != nil {
		return err
	}
	if err := w.AddAttachment(att); err != nil {
		fmt.Fprintln(a.out, " ", err)
		return nil
	}
	if att.Preview != "" {
		fmt.Fprintf(a.out, "  Preview ready (%s, %s)\n", att.ContentType, upload.FormatFileSize(att.Size))
	}
	st, err := a.api.Upload().Single(ctx, client.File{Name: filepath.Base(path), Body: body}, a.progress())
	if err != nil {
		fmt.Fprintln(a.out, "  Failed to upload file. Please try again.")
		return nil
	}
	return w.Set("image", st.URL)
}

func (a *app) progress() func(int) {
	return func(p int) {
		fmt.Fprintf(a.out, "\r  Uploading... %3d%%", p)
		if p == 100 || p == 0 {
			fmt.Fprintln(a.out)
		}
	}
}

func (a *app) upload(ctx context.Context, rest []string) error {
	if len(rest) == 0 {
		return errors.New("missing file path")
	}
	f, err := os.Open(rest[0])
	if err != nil {
		return err
	}
	defer f.Close()
	st, err := a.api.Upload().Image(ctx, client.File{Name: filepath.Base(rest[0]), Body: f}, a.progress())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded %s (%s, %s)\n%s\n", st.PublicID, upload.FormatFileSize(st.Size), upload.IconType(st.URL), st.URL)
	return nil
}

func (a *app) export(ctx context.Context, rest []string) error {
	status, _, err := statusFlag("export", rest)
	if err != nil {
		return err
	}
	data, name, err := a.api.Bookings().Export(ctx, status)
	if err != nil {
		return err
	}
	return a.save(name, "bookings.xlsx", data)
}

func (a *app) pdf(ctx context.Context, rest []string) error {
	id, err := parseID(rest)
	if err != nil {
		return err
	}
	data, name, err := a.api.Bookings().Confirmation(ctx, id)
	if err != nil {
		return err
	}
	return a.save(name, fmt.Sprintf("booking_%d.pdf", id), data)
}

func (a *app) save(name, fallback string, data []byte) error {
	name = filepath.Base(name)
	if name == "" || name == "." || name == "/" {
		name = fallback
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %s (%s)\n", name, upload.FormatFileSize(int64(len(data))))
	return nil
}
