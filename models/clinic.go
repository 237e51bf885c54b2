package models

// Clinic is the tenant boundary. Record management is owned by the external
// clinic-operations module; the engine only reads these.
type Clinic struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	// WalkInSlotCapacity caps concurrent walk-ins per synthetic slot when
	// positive; zero means walk-ins bypass slot-capacity checks (tokens are
	// still issued atomically).
	WalkInSlotCapacity int  `bson:"walkInSlotCapacity" json:"walkInSlotCapacity"`
	Active             bool `bson:"active" json:"active"`
}

// Doctor is a practitioner affiliated with one or more clinics.
type Doctor struct {
	ID        string   `bson:"id" json:"id"`
	Name      string   `bson:"name" json:"name"`
	Specialty string   `bson:"specialty,omitempty" json:"specialty,omitempty"`
	ClinicIDs []string `bson:"clinicIds" json:"clinicIds"`
	Active    bool     `bson:"active" json:"active"`
}

// AffiliatedWith reports whether the doctor practices at the given clinic.
func (d Doctor) AffiliatedWith(clinicID string) bool {
	for _, id := range d.ClinicIDs {
		if id == clinicID {
			return true
		}
	}
	return false
}
