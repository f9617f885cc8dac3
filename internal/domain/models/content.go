package models

import "time"

// SiteContent holds the editable hero/about/contact blocks.
type SiteContent struct {
	HeroHeadline string    `json:"hero_headline" yaml:"hero_headline"`
	HeroSubtitle string    `json:"hero_subtitle" yaml:"hero_subtitle"`
	AboutText    string    `json:"about_text" yaml:"about_text"`
	ContactEmail string    `json:"contact_email" yaml:"contact_email" validate:"omitempty,loose_email"`
	ContactPhone string    `json:"contact_phone" yaml:"contact_phone"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" yaml:"-"`
}

// ContentKeys are the stored keys, in display order.
var ContentKeys = []string{"hero_headline", "hero_subtitle", "about_text", "contact_email", "contact_phone"}

// ToMap flattens the content into key/value rows.
func (c SiteContent) ToMap() map[string]string {
	return map[string]string{
		"hero_headline": c.HeroHeadline,
		"hero_subtitle": c.HeroSubtitle,
		"about_text":    c.AboutText,
		"contact_email": c.ContactEmail,
		"contact_phone": c.ContactPhone,
	}
}

// ContentFromMap is the inverse of ToMap; unknown keys are ignored.
func ContentFromMap(m map[string]string) SiteContent {
	return SiteContent{
		HeroHeadline: m["hero_headline"],
		HeroSubtitle: m["hero_subtitle"],
		AboutText:    m["about_text"],
		ContactEmail: m["contact_email"],
		ContactPhone: m["contact_phone"],
	}
}
