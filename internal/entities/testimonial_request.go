package entities

// TestimonialRequest is a testimonial submission. Clients must also supply a
// verification code matching their email; admins may pre-approve.
type TestimonialRequest struct {
	Name    string `json:"name" validate:"required"`
	Role    string `json:"role,omitempty"`
	Quote   string `json:"quote" validate:"required"`
	Project string `json:"project,omitempty"`
	Rating  int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Date    string `json:"date,omitempty"`
	Image   string `json:"image,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
}

// CodeVerifyRequest checks a verification code against an email.
type CodeVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// CodeUpdateRequest adds or removes a verification code (admin).
type CodeUpdateRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Code   string `json:"code,omitempty"`
	Action string `json:"action" validate:"required,oneof=add remove"`
}
