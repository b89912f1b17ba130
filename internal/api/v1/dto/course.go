package dto

// CourseCreateDTO holds the text fields of a multipart course creation request
type CourseCreateDTO struct {
	Title       string `validate:"required,max=255"`
	Description string `validate:"max=5000"`
	Category    string `validate:"max=100"`
}

// CourseUpdateDTO holds the text fields of a multipart course update request.
// Absent form fields stay nil.
type CourseUpdateDTO struct {
	Title       *string `validate:"omitempty,min=1,max=255"`
	Description *string `validate:"omitempty,max=5000"`
	Category    *string `validate:"omitempty,max=100"`
}

// LessonCreateDTO holds the text fields of a multipart lesson request
type LessonCreateDTO struct {
	Title    string
	Content  string
	VideoURL string `validate:"omitempty,url"`
	Order    *int   `validate:"omitempty,gte=0"`
}

type LessonUpdateDTO struct {
	Title    *string
	Content  *string
	VideoURL *string `validate:"omitempty,url"`
	Order    *int    `validate:"omitempty,gte=0"`
}
