// Package domain holds the lead-qualification domain model shared by the
// conversation engine, the repositories, and the HTTP surface.
package domain

import "time"

// Tier is the three-valued lead-quality classification.
type Tier string

const (
	TierHot  Tier = "hot"
	TierWarm Tier = "warm"
	TierCold Tier = "cold"
)

// Unknown is the sentinel value written into a qualification field when the
// lead was asked and declined or could not specify. It is semantically
// distinct from an unset field: an unknown field is never re-asked and never
// counts toward fill-based scoring signals.
const Unknown = "unknown"

// Qualification field names, in interview order.
const (
	FieldLocation    = "location"
	FieldHomeType    = "home_type"
	FieldBedrooms    = "bedrooms"
	FieldBudget      = "budget"
	FieldTimeline    = "timeline"
	FieldPreapproval = "preapproval"
	FieldMotivation  = "motivation"
)

// FieldNames lists the seven qualification fields in interview order.
var FieldNames = []string{
	FieldLocation,
	FieldHomeType,
	FieldBedrooms,
	FieldBudget,
	FieldTimeline,
	FieldPreapproval,
	FieldMotivation,
}

// Fields holds the seven qualification answers. An empty string means unset;
// the Unknown sentinel means asked-and-declined.
type Fields struct {
	Location    string `json:"location"`
	HomeType    string `json:"homeType"`
	Bedrooms    string `json:"bedrooms"`
	Budget      string `json:"budget"`
	Timeline    string `json:"timeline"`
	Preapproval string `json:"preapproval"`
	Motivation  string `json:"motivation"`
}

// Get returns the value of the named field.
func (f Fields) Get(name string) string {
	switch name {
	case FieldLocation:
		return f.Location
	case FieldHomeType:
		return f.HomeType
	case FieldBedrooms:
		return f.Bedrooms
	case FieldBudget:
		return f.Budget
	case FieldTimeline:
		return f.Timeline
	case FieldPreapproval:
		return f.Preapproval
	case FieldMotivation:
		return f.Motivation
	}
	return ""
}

// Set writes the value of the named field. Unknown names are ignored.
func (f *Fields) Set(name, value string) {
	switch name {
	case FieldLocation:
		f.Location = value
	case FieldHomeType:
		f.HomeType = value
	case FieldBedrooms:
		f.Bedrooms = value
	case FieldBudget:
		f.Budget = value
	case FieldTimeline:
		f.Timeline = value
	case FieldPreapproval:
		f.Preapproval = value
	case FieldMotivation:
		f.Motivation = value
	}
}

// FilledCount counts fields that are set and not the Unknown sentinel.
func (f Fields) FilledCount() int {
	count := 0
	for _, name := range FieldNames {
		value := f.Get(name)
		if value != "" && value != Unknown {
			count++
		}
	}
	return count
}

// Lead is one prospective buyer, keyed by normalized phone number.
type Lead struct {
	Phone                 string
	CurrentQuestionIndex  int
	QualificationComplete bool
	AskedForMeeting       bool
	MeetingScheduled      bool
	WantsMeeting          *bool
	MeetingNotes          *string
	LeadScore             Tier
	Fields                Fields
	Notes                 *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewLead returns the default state for a phone not yet on record.
func NewLead(phone string) Lead {
	return Lead{Phone: phone}
}
