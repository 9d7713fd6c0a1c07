package constvars

const (
	URLParamDraftID  = "draft_id"
	URLParamLetterID = "letter_id"
	URLParamReviewID = "review_id"
)

const (
	FormFieldPatientID  = "patient_id"
	FormFieldFile       = "file"
	FormFieldName       = "name"
	FormFieldAge        = "age"
	FormFieldSex        = "sex"
	FormFieldAddress    = "address"
	FormFieldConditions = "conditions"
)
