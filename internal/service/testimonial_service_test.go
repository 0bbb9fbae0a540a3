package service

import (
	"errors"
	"testing"

	"lueurstudio/internal/entities"
	apperrors "lueurstudio/internal/errors"
	"lueurstudio/internal/repository"
	"lueurstudio/internal/store"
)

func newTestTestimonialService(t *testing.T) *TestimonialService {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewTestimonialService(repository.NewTestimonialRepository(s))
}

func validTestimonialRequest() entities.TestimonialRequest {
	return entities.TestimonialRequest{
		Name:  "Chloé Martin",
		Quote: "Des photos magnifiques, merci !",
		Email: "Chloe@Example.com",
	}
}

func TestVerifyCodeIsCaseInsensitive(t *testing.T) {
	svc := newTestTestimonialService(t)

	if err := svc.UpdateCode(entities.CodeUpdateRequest{
		Email:  "Chloe@Example.com",
		Code:   "abcd1234",
		Action: "add",
	}); err != nil {
		t.Fatalf("UpdateCode: %v", err)
	}

	cases := []struct {
		email, code string
		want        bool
	}{
		{"chloe@example.com", "ABCD1234", true},
		{"CHLOE@EXAMPLE.COM", "abcd1234", true},
		{" chloe@example.com ", "AbCd1234", true},
		{"chloe@example.com", "WRONG", false},
		{"other@example.com", "ABCD1234", false},
	}
	for _, c := range cases {
		got, err := svc.VerifyCode(c.email, c.code)
		if err != nil {
			t.Fatalf("VerifyCode(%q, %q): %v", c.email, c.code, err)
		}
		if got != c.want {
			t.Errorf("VerifyCode(%q, %q) = %v, want %v", c.email, c.code, got, c.want)
		}
	}
}

func TestAddRequiresValidCode(t *testing.T) {
	svc := newTestTestimonialService(t)

	if err := svc.UpdateCode(entities.CodeUpdateRequest{
		Email:  "chloe@example.com",
		Code:   "ABCD1234",
		Action: "add",
	}); err != nil {
		t.Fatal(err)
	}

	// Missing code.
	_, err := svc.Add(validTestimonialRequest(), "", false, false)
	var httpErr *apperrors.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != 400 {
		t.Errorf("missing code err = %v, want a 400", err)
	}

	// Wrong code.
	_, err = svc.Add(validTestimonialRequest(), "NOPE", false, false)
	if !errors.As(err, &httpErr) || httpErr.Code != 401 {
		t.Errorf("wrong code err = %v, want a 401", err)
	}

	// Right code, any case.
	created, err := svc.Add(validTestimonialRequest(), "abcd1234", false, false)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created.Approved {
		t.Error("client submissions must start unapproved")
	}
	if created.Rating != 5 {
		t.Errorf("rating = %d, want the default 5", created.Rating)
	}
}

func TestAdminAddBypassesCodeAndPreApproves(t *testing.T) {
	svc := newTestTestimonialService(t)

	created, err := svc.Add(validTestimonialRequest(), "", true, true)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !created.Approved {
		t.Error("admin submissions can be pre-approved")
	}
}

func TestListPublicFiltersUnapproved(t *testing.T) {
	svc := newTestTestimonialService(t)

	approved, err := svc.Add(validTestimonialRequest(), "", true, true)
	if err != nil {
		t.Fatal(err)
	}
	pending, err := svc.Add(validTestimonialRequest(), "", true, false)
	if err != nil {
		t.Fatal(err)
	}

	public, err := svc.ListPublic()
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(public) != 1 || public[0].ID != approved.ID {
		t.Errorf("public = %+v, want only %s", public, approved.ID)
	}

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d testimonials, want 2", len(all))
	}

	// Approval flips visibility.
	if _, err := svc.SetApproved(pending.ID, true); err != nil {
		t.Fatal(err)
	}
	public, err = svc.ListPublic()
	if err != nil {
		t.Fatal(err)
	}
	if len(public) != 2 {
		t.Errorf("got %d public testimonials after approval, want 2", len(public))
	}
}

func TestRemoveCode(t *testing.T) {
	svc := newTestTestimonialService(t)

	if err := svc.UpdateCode(entities.CodeUpdateRequest{
		Email:  "chloe@example.com",
		Code:   "ABCD1234",
		Action: "add",
	}); err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateCode(entities.CodeUpdateRequest{
		Email:  "CHLOE@example.com",
		Action: "remove",
	}); err != nil {
		t.Fatalf("remove: %v", err)
	}

	ok, err := svc.VerifyCode("chloe@example.com", "ABCD1234")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("removed code must not verify")
	}
}
