package campaign

// Campaign is the payload for creating and updating campaigns and the shape
// returned by the details endpoint. Unset pointer and slice fields are left
// out of requests so the API, or the defaults template on creation, fills them.
type Campaign struct {
	ID                 int64               `json:"id,omitempty"`
	GeneralInformation *GeneralInformation `json:"general_information,omitempty"`
	Budget             *Budget             `json:"budget,omitempty"`
	Categories         *Categories         `json:"categories,omitempty"`
	Targeting          *Targeting          `json:"targeting,omitempty"`
	Schedule           *Schedule           `json:"schedule,omitempty"`
}

// GeneralInformation holds the campaign identity
type GeneralInformation struct {
	Name         *string `json:"name,omitempty"`
	URL          *string `json:"url,omitempty"`
	Status       *string `json:"status,omitempty"`
	PricingModel *string `json:"pricing_model,omitempty"`
	TrafficType  *string `json:"traffic_type,omitempty"`
	Adult        *bool   `json:"adult,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// Budget holds bid and spend limits, in account currency
type Budget struct {
	MaxBid      *float64 `json:"max_bid,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
	DailyBudget *float64 `json:"daily_budget,omitempty"`
	Pacing      *string  `json:"pacing,omitempty"`
}

// Categories lists category IDs to include or exclude
type Categories struct {
	Include []int `json:"include,omitempty"`
	Exclude []int `json:"exclude,omitempty"`
}

// Targeting restricts where the campaign is shown
type Targeting struct {
	Countries        []string `json:"countries,omitempty"`
	Devices          []string `json:"devices,omitempty"`
	OperatingSystems []string `json:"os,omitempty"`
	Browsers         []string `json:"browsers,omitempty"`
	Languages        []string `json:"languages,omitempty"`
}

// Schedule restricts when the campaign runs
type Schedule struct {
	Enabled  *bool    `json:"enabled,omitempty"`
	Timezone *string  `json:"timezone,omitempty"`
	Days     []string `json:"days,omitempty"`
}

// Details is the data section of campaign responses
type Details struct {
	Campaign Campaign `json:"campaign"`
}

// Name returns the campaign name or an empty string
func (c *Campaign) Name() string {
	if c.GeneralInformation == nil || c.GeneralInformation.Name == nil {
		return ""
	}
	return *c.GeneralInformation.Name
}
