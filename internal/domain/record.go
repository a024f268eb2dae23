package domain

// Metadata field names as they appear in the catalog source data. The
// catalog is the MOHW "나에게 힘이 되는 복지서비스" guidebook, so the keys
// are Korean; they double as lookup field names throughout the service.
const (
	FieldMajorCategory     = "대분류"
	FieldMinorCategory     = "중분류"
	FieldEntryName         = "사업명"
	FieldTargetGroup       = "대상"
	FieldOverview          = "개요"
	FieldDetail            = "내용"
	FieldSupportDetail     = "지원내용"
	FieldApplicationMethod = "방법"
	FieldContact           = "문의"
	FieldItemKind          = "항목"
)

// Record is one catalog entry fragment. Records are immutable after load;
// the catalog store owns them for the process lifetime.
type Record struct {
	// Body is opaque text, frequently a serialized JSON object.
	Body string `json:"body"`

	MajorCategory     string `json:"대분류"`
	MinorCategory     string `json:"중분류"`
	EntryName         string `json:"사업명"`
	TargetGroup       string `json:"대상"`
	Overview          string `json:"개요"`
	Detail            string `json:"내용"`
	SupportDetail     string `json:"지원내용"`
	ApplicationMethod string `json:"방법"`
	Contact           string `json:"문의"`
	ItemKind          string `json:"항목"`
}

// Field returns the metadata value for a field name. The second return
// value is false for unknown field names; Body is not addressable here.
func (r Record) Field(name string) (string, bool) {
	switch name {
	case FieldMajorCategory:
		return r.MajorCategory, true
	case FieldMinorCategory:
		return r.MinorCategory, true
	case FieldEntryName:
		return r.EntryName, true
	case FieldTargetGroup:
		return r.TargetGroup, true
	case FieldOverview:
		return r.Overview, true
	case FieldDetail:
		return r.Detail, true
	case FieldSupportDetail:
		return r.SupportDetail, true
	case FieldApplicationMethod:
		return r.ApplicationMethod, true
	case FieldContact:
		return r.Contact, true
	case FieldItemKind:
		return r.ItemKind, true
	}
	return "", false
}
