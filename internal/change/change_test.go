package change

import "testing"

func TestPageChange(t *testing.T) {
	ch := PageChange("Main", "new page text")
	if ch.Kind != KindPage {
		t.Fatalf("expected KindPage, got %s", ch.Kind)
	}
	if ch.Subject != "Main" {
		t.Fatalf("expected subject Main, got %s", ch.Subject)
	}
	if ch.Text != "new page text" {
		t.Fatalf("unexpected text: %q", ch.Text)
	}
}

func TestGeneric(t *testing.T) {
	ch := Generic("a comment")
	if ch.Kind != KindGeneric {
		t.Fatalf("expected KindGeneric, got %s", ch.Kind)
	}
	if ch.Subject != "" {
		t.Fatalf("generic change must carry no subject, got %s", ch.Subject)
	}
}
