package models

// VaccinationCenter describes a clinic that takes vaccination appointments.
type VaccinationCenter struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Phone     string  `json:"phone"`
	Hours     string  `json:"hours"`
}

// VaccinationCenters is the directory of clinics shown to customers.
var VaccinationCenters = []VaccinationCenter{
	{
		Name:      "Main Center",
		Address:   "Radhe Radhe, Bhaktapur",
		Latitude:  27.7172,
		Longitude: 85.3240,
		Phone:     "+977-1-4123456",
		Hours:     "9:00 AM - 5:00 PM",
	},
	{
		Name:      "Downtown Clinic",
		Address:   "45 Health Street, Lalitpur",
		Latitude:  27.6588,
		Longitude: 85.3247,
		Phone:     "+977-1-5987654",
		Hours:     "8:00 AM - 4:00 PM",
	},
	{
		Name:      "East Wing Hospital",
		Address:   "78 Care Road, Bhaktapur",
		Latitude:  27.6710,
		Longitude: 85.4298,
		Phone:     "+977-1-6678901",
		Hours:     "8:30 AM - 4:30 PM",
	},
}

// FindVaccinationCenter looks a center up by its exact name.
func FindVaccinationCenter(name string) (VaccinationCenter, bool) {
	for _, c := range VaccinationCenters {
		if c.Name == name {
			return c, true
		}
	}
	return VaccinationCenter{}, false
}
