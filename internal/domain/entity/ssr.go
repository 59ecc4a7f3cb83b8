package entity

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ServiceCategory groups special service requests
type ServiceCategory string

const (
	ServiceBaggage    ServiceCategory = "BAGGAGE"
	ServiceSports     ServiceCategory = "SPORTS"
	ServicePet        ServiceCategory = "PET"
	ServiceSeat       ServiceCategory = "SEAT"
	ServiceMeal       ServiceCategory = "MEAL"
	ServiceAssistance ServiceCategory = "ASSISTANCE"
	ServiceOther      ServiceCategory = "OTHER"
)

// ExcessWeightPrefix is the dynamic SSR family priced per kilogram
const ExcessWeightPrefix = "XWGT-KG"

// ExcessWeightRate is the price of one excess kilogram in whole units
const ExcessWeightRate = 3

// MaxExcessWeightKG bounds the XWGT-KG<n> family
const MaxExcessWeightKG = 999

var excessWeightPattern = regexp.MustCompile(`^` + ExcessWeightPrefix + `([0-9]{1,3})$`)

// ServiceDefinition is one entry of the SSR catalogue
type ServiceDefinition struct {
	Code        string
	Description string
	Price       Money
	Category    ServiceCategory
	AddsBag     bool
}

var serviceCatalog = map[string]ServiceDefinition{
	"XBAG": {Code: "XBAG", Description: "EXTRA CHECKED BAG 23KG", Price: Units(45), Category: ServiceBaggage, AddsBag: true},
	"BULK": {Code: "BULK", Description: "OVERSIZE BAGGAGE", Price: Units(60), Category: ServiceBaggage, AddsBag: true},
	"SPEQ": {Code: "SPEQ", Description: "SPORTS EQUIPMENT", Price: Units(50), Category: ServiceSports},
	"BIKE": {Code: "BIKE", Description: "BICYCLE", Price: Units(55), Category: ServiceSports},
	"PETC": {Code: "PETC", Description: "PET IN CABIN", Price: Units(60), Category: ServicePet},
	"AVIH": {Code: "AVIH", Description: "ANIMAL IN HOLD", Price: Units(75), Category: ServicePet},
	"RQST": {Code: "RQST", Description: "SEAT RESERVATION", Price: Units(12), Category: ServiceSeat},
	"PRIO": {Code: "PRIO", Description: "PRIORITY BOARDING", Price: Units(8), Category: ServiceOther},
	"LOUN": {Code: "LOUN", Description: "LOUNGE ACCESS", Price: Units(30), Category: ServiceOther},
	"UMNR": {Code: "UMNR", Description: "UNACCOMPANIED MINOR", Price: Units(40), Category: ServiceAssistance},
	"WCHR": {Code: "WCHR", Description: "WHEELCHAIR - RAMP", Category: ServiceAssistance},
	"WCHS": {Code: "WCHS", Description: "WHEELCHAIR - STEPS", Category: ServiceAssistance},
	"BLND": {Code: "BLND", Description: "BLIND PASSENGER", Category: ServiceAssistance},
	"DEAF": {Code: "DEAF", Description: "DEAF PASSENGER", Category: ServiceAssistance},
	"VGML": {Code: "VGML", Description: "VEGETARIAN MEAL", Category: ServiceMeal},
	"KSML": {Code: "KSML", Description: "KOSHER MEAL", Category: ServiceMeal},
	"DBML": {Code: "DBML", Description: "DIABETIC MEAL", Category: ServiceMeal},
}

// LookupService resolves an SSR code against the catalogue, including the
// XWGT-KG<n> excess weight family.
func LookupService(code string) (ServiceDefinition, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if def, ok := serviceCatalog[code]; ok {
		return def, true
	}

	if m := excessWeightPattern.FindStringSubmatch(code); m != nil {
		kg, err := strconv.Atoi(m[1])
		if err != nil || kg < 1 || kg > MaxExcessWeightKG {
			return ServiceDefinition{}, false
		}
		return ServiceDefinition{
			Code:        code,
			Description: fmt.Sprintf("EXCESS WEIGHT %dKG", kg),
			Price:       Units(kg * ExcessWeightRate),
			Category:    ServiceBaggage,
		}, true
	}

	return ServiceDefinition{}, false
}

// ServiceCatalog returns the static catalogue sorted by code
func ServiceCatalog() []ServiceDefinition {
	defs := make([]ServiceDefinition, 0, len(serviceCatalog))
	for _, def := range serviceCatalog {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Code < defs[j].Code })
	return defs
}

// ServiceRequest is one SSR line item on a reservation. Indexes are 0-based;
// nil means the request applies to every passenger/segment.
type ServiceRequest struct {
	ServiceDefinition
	PassengerIndex *int `json:"passengerIndex,omitempty"`
	SegmentIndex   *int `json:"segmentIndex,omitempty"`
}

// Chargeable reports whether the request carries a price
func (s ServiceRequest) Chargeable() bool {
	return s.Price > 0
}

// AppliesToPassenger reports whether the request targets passenger i
func (s ServiceRequest) AppliesToPassenger(i int) bool {
	return s.PassengerIndex == nil || *s.PassengerIndex == i
}
