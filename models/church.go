package models

// FeatureSettings toggles whole modules on or off for a church.
type FeatureSettings struct {
	Donations       bool `bson:"donations" json:"donations"`
	Events          bool `bson:"events" json:"events"`
	Groups          bool `bson:"groups" json:"groups"`
	Messaging       bool `bson:"messaging" json:"messaging"`
	PrayerRequests  bool `bson:"prayerRequests" json:"prayerRequests"`
	Volunteers      bool `bson:"volunteers" json:"volunteers"`
	ServicePlanning bool `bson:"servicePlanning" json:"servicePlanning"`
	Reports         bool `bson:"reports" json:"reports"`
}

// CustomFieldDef describes an admin-defined extra field for an entity type.
type CustomFieldDef struct {
	Name         string   `bson:"name" json:"name"`
	Type         string   `bson:"type" json:"type"` // text, number, date, select, boolean
	Entity       string   `bson:"entity" json:"entity"`
	Required     bool     `bson:"required" json:"required"`
	Options      []string `bson:"options,omitempty" json:"options,omitempty"`
	DefaultValue any      `bson:"defaultValue,omitempty" json:"defaultValue,omitempty"`
}

// Church is the tenant root. Every other entity references it by churchId.
type Church struct {
	Meta         `bson:",inline"`
	Name         string           `bson:"name" json:"name"`
	Address      *Address         `bson:"address,omitempty" json:"address,omitempty"`
	Phone        string           `bson:"phone,omitempty" json:"phone,omitempty"`
	Email        string           `bson:"email,omitempty" json:"email,omitempty"`
	Website      string           `bson:"website,omitempty" json:"website,omitempty"`
	LogoURL      string           `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	Timezone     string           `bson:"timezone" json:"timezone"`
	Currency     string           `bson:"currency" json:"currency"`
	DateFormat   string           `bson:"dateFormat" json:"dateFormat"`
	Settings     FeatureSettings  `bson:"settings" json:"settings"`
	CustomFields []CustomFieldDef `bson:"customFields,omitempty" json:"customFields,omitempty"`
}

// NewChurch returns a church with the defaults a fresh registration gets.
func NewChurch(name string) Church {
	return Church{
		Name:       name,
		Timezone:   "America/New_York",
		Currency:   "USD",
		DateFormat: "MM/DD/YYYY",
		Settings: FeatureSettings{
			Donations:       true,
			Events:          true,
			Groups:          true,
			Messaging:       true,
			PrayerRequests:  true,
			Volunteers:      true,
			ServicePlanning: true,
			Reports:         true,
		},
	}
}
