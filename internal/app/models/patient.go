package models

// Patient is a registry record. Only the registry assigns ID.
type Patient struct {
	ID         ExternalID `json:"id"`
	Name       string     `json:"name"`
	Age        *int       `json:"age"`
	Sex        string     `json:"sex"`
	Address    string     `json:"address"`
	Conditions string     `json:"conditions"`
}

// PatientQuery is what the clinician typed into the search block.
type PatientQuery struct {
	Name    string `json:"name"`
	Age     *int   `json:"age,omitempty"`
	Address string `json:"address,omitempty"`
}

// PatientDraft is the input for registering a new patient.
type PatientDraft struct {
	Name       string `json:"name" validate:"required"`
	Sex        string `json:"sex" validate:"required,sex"`
	Age        *int   `json:"age,omitempty" validate:"omitempty,gte=0"`
	Address    string `json:"address,omitempty"`
	Conditions string `json:"conditions,omitempty"`
}

// PatientForm mirrors the patient block of the new letter form.
type PatientForm struct {
	PatientID  ExternalID `json:"patient_id"`
	Name       string     `json:"name"`
	Age        *int       `json:"age"`
	Sex        string     `json:"sex"`
	Address    string     `json:"address"`
	Conditions string     `json:"conditions"`
}

func (f PatientForm) Query() PatientQuery {
	return PatientQuery{
		Name:    f.Name,
		Age:     f.Age,
		Address: f.Address,
	}
}

func (f PatientForm) Draft() PatientDraft {
	return PatientDraft{
		Name:       f.Name,
		Sex:        f.Sex,
		Age:        f.Age,
		Address:    f.Address,
		Conditions: f.Conditions,
	}
}

// MatchOutcome is the result of a registry check. Found=false is the
// NotFound outcome and is not an error.
type MatchOutcome struct {
	Found   bool     `json:"found"`
	Patient *Patient `json:"patient,omitempty"`
}
