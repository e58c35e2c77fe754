package domain

// SubjectType differentiates the kind of entity an event refers to.
type SubjectType string

const (
	SubjectTypeUser  SubjectType = "USER"
	SubjectTypePhoto SubjectType = "PHOTO"
)
