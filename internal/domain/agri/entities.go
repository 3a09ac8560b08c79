package agri

import "time"

// FarmerProfile is the subset of the farmer record used for advice.
type FarmerProfile struct {
	ID                string   `json:"id" yaml:"id"`
	Name              string   `json:"name" yaml:"name"`
	Phone             string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Village           string   `json:"village,omitempty" yaml:"village,omitempty"`
	District          string   `json:"district,omitempty" yaml:"district,omitempty"`
	State             string   `json:"state,omitempty" yaml:"state,omitempty"`
	LandSizeAcres     float64  `json:"landSizeAcres,omitempty" yaml:"landSizeAcres,omitempty"`
	Crops             []string `json:"crops,omitempty" yaml:"crops,omitempty"`
	PreferredLanguage string   `json:"preferredLanguage,omitempty" yaml:"preferredLanguage,omitempty"`
}

// Farm is a plot owned by a farmer.
type Farm struct {
	ID             string  `json:"id" yaml:"id"`
	FarmerID       string  `json:"farmerId" yaml:"farmerId"`
	Name           string  `json:"name" yaml:"name"`
	AreaAcres      float64 `json:"areaAcres" yaml:"areaAcres"`
	SoilType       string  `json:"soilType,omitempty" yaml:"soilType,omitempty"`
	IrrigationType string  `json:"irrigationType,omitempty" yaml:"irrigationType,omitempty"`
	CurrentCrop    string  `json:"currentCrop,omitempty" yaml:"currentCrop,omitempty"`
	Season         string  `json:"season,omitempty" yaml:"season,omitempty"`
	District       string  `json:"district,omitempty" yaml:"district,omitempty"`
}

// Activity is a logged farm operation such as sowing or spraying.
type Activity struct {
	ID          string    `json:"id" yaml:"id"`
	FarmerID    string    `json:"farmerId" yaml:"farmerId"`
	FarmID      string    `json:"farmId,omitempty" yaml:"farmId,omitempty"`
	Type        string    `json:"type" yaml:"type"`
	Crop        string    `json:"crop,omitempty" yaml:"crop,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Date        time.Time `json:"date" yaml:"date"`
}

// Recommendation is advice previously issued to a farmer.
type Recommendation struct {
	ID          string    `json:"id" yaml:"id"`
	FarmerID    string    `json:"farmerId" yaml:"farmerId"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Category    string    `json:"category,omitempty" yaml:"category,omitempty"`
	Priority    string    `json:"priority,omitempty" yaml:"priority,omitempty"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

// Scheme is a government benefit programme.
type Scheme struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	State       string `json:"state" yaml:"state"`
	Category    string `json:"category" yaml:"category"`
	Benefits    string `json:"benefits,omitempty" yaml:"benefits,omitempty"`
	Eligibility string `json:"eligibility,omitempty" yaml:"eligibility,omitempty"`
}

// NationalSchemeState marks schemes that apply in every state.
const NationalSchemeState = "All India"

// NationalSchemeCategory is the category paired with NationalSchemeState.
const NationalSchemeCategory = "national"

// Officer is an agricultural extension officer.
type Officer struct {
	ID              string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name            string   `json:"name" yaml:"name"`
	Designation     string   `json:"designation" yaml:"designation"`
	Department      string   `json:"department" yaml:"department"`
	Specialization  string   `json:"specialization" yaml:"specialization"`
	State           string   `json:"state" yaml:"state"`
	District        string   `json:"district" yaml:"district"`
	Address         string   `json:"address" yaml:"address"`
	Phone           string   `json:"phone" yaml:"phone"`
	Email           string   `json:"email" yaml:"email"`
	AvailableHours  string   `json:"availableHours" yaml:"availableHours"`
	ExperienceYears int      `json:"experienceYears" yaml:"experienceYears"`
	Languages       []string `json:"languages" yaml:"languages"`
	Rating          float64  `json:"rating" yaml:"rating"`
	IsAvailable     bool     `json:"isAvailable" yaml:"isAvailable"`
	ConsultationFee int      `json:"consultationFee" yaml:"consultationFee"`
}

// PriceRecord is one market quote for a commodity variety.
type PriceRecord struct {
	State       string    `json:"state" yaml:"state"`
	District    string    `json:"district" yaml:"district"`
	Market      string    `json:"market" yaml:"market"`
	Commodity   string    `json:"commodity" yaml:"commodity"`
	Variety     string    `json:"variety" yaml:"variety"`
	MinPrice    int       `json:"minPrice" yaml:"minPrice"`
	MaxPrice    int       `json:"maxPrice" yaml:"maxPrice"`
	ModalPrice  int       `json:"modalPrice" yaml:"modalPrice"`
	ArrivalDate string    `json:"arrivalDate" yaml:"arrivalDate"`
	FetchedAt   time.Time `json:"fetchedAt" yaml:"fetchedAt"`
}

// Coordinates is a resolved geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// GeoCacheEntry is a persisted geocode result, unique per district and state.
type GeoCacheEntry struct {
	District string  `json:"district" yaml:"district"`
	State    string  `json:"state" yaml:"state"`
	Lat      float64 `json:"lat" yaml:"lat"`
	Lon      float64 `json:"lon" yaml:"lon"`
}

// ConversationTurn is one prior message in a chat.
type ConversationTurn struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}
