package requests

type StartDraft struct {
	DoctorName string `json:"doctor_name"`
	DataType   string `json:"data_type" validate:"omitempty,oneof=Text CSV"`
	Urgency    string `json:"urgency" validate:"omitempty,oneof=Routine Urgent"`
}

type UpdateDraft struct {
	Name       *string `json:"name"`
	Age        *int    `json:"age" validate:"omitempty,gte=0"`
	ClearAge   bool    `json:"clear_age"`
	Sex        *string `json:"sex"`
	Address    *string `json:"address"`
	Conditions *string `json:"conditions"`
	DataType   *string `json:"data_type" validate:"omitempty,oneof=Text CSV"`
	RawData    *string `json:"raw_data"`
	Urgency    *string `json:"urgency" validate:"omitempty,oneof=Routine Urgent"`
	Notes      *string `json:"notes"`
	DoctorName *string `json:"doctor_name"`
}

type IngestText struct {
	RawData string `json:"raw_data"`
}
