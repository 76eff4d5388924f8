package domain

import (
	"errors"
	"testing"
)

func lessonsFixture(n int) []*Lesson {
	out := make([]*Lesson, n)
	for i := range out {
		out[i] = &Lesson{ID: string(rune('a' + i)), OrderIndex: i}
	}
	return out
}

func assertDense(t *testing.T, lessons []*Lesson) {
	t.Helper()
	seen := make(map[int]bool, len(lessons))
	for i, l := range lessons {
		if l.OrderIndex != i {
			t.Errorf("position %d holds order index %d", i, l.OrderIndex)
		}
		if seen[l.OrderIndex] {
			t.Errorf("duplicate order index %d", l.OrderIndex)
		}
		seen[l.OrderIndex] = true
	}
}

func TestReorder_MoveForward(t *testing.T) {
	ls, err := Reorder(lessonsFixture(4), 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"b", "c", "a", "d"}
	for i, id := range want {
		if ls[i].ID != id {
			t.Errorf("position %d: want %q, got %q", i, id, ls[i].ID)
		}
	}
	assertDense(t, ls)
}

func TestReorder_MoveBackward(t *testing.T) {
	ls, err := Reorder(lessonsFixture(4), 3, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"d", "a", "b", "c"}
	for i, id := range want {
		if ls[i].ID != id {
			t.Errorf("position %d: want %q, got %q", i, id, ls[i].ID)
		}
	}
	assertDense(t, ls)
}

func TestReorder_SamePosition(t *testing.T) {
	ls, err := Reorder(lessonsFixture(3), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if ls[i].ID != id {
			t.Errorf("position %d: want %q, got %q", i, id, ls[i].ID)
		}
	}
	assertDense(t, ls)
}

func TestReorder_OutOfRange(t *testing.T) {
	cases := []struct{ from, to int }{
		{-1, 0}, {0, -1}, {3, 0}, {0, 3},
	}
	for _, tc := range cases {
		if _, err := Reorder(lessonsFixture(3), tc.from, tc.to); !errors.Is(err, ErrInvalidReorder) {
			t.Errorf("from=%d to=%d: expected ErrInvalidReorder, got %v", tc.from, tc.to, err)
		}
	}
}

func TestRenumber_ClosesGaps(t *testing.T) {
	ls := lessonsFixture(4)
	ls = append(ls[:1], ls[2:]...) // simulate a deletion
	Renumber(ls)
	assertDense(t, ls)
}

func TestNextIndex(t *testing.T) {
	if got := NextIndex(nil); got != 0 {
		t.Errorf("empty course must append at 0, got %d", got)
	}
	if got := NextIndex(lessonsFixture(3)); got != 3 {
		t.Errorf("dense sequence must append at 3, got %d", got)
	}

	gapped := lessonsFixture(3)
	gapped = append(gapped[:1], gapped[2:]...) // survivors keep indices {0, 2}
	if got := NextIndex(gapped); got != 3 {
		t.Errorf("gapped sequence must append past the highest index, got %d", got)
	}
}

func TestLessonDraft_Validate(t *testing.T) {
	d := &LessonDraft{Title: "   "}
	if !errors.Is(d.Validate(), ErrLessonTitleRequired) {
		t.Error("whitespace-only title must be rejected")
	}
	d.Title = "HTML Basics"
	if err := d.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCanAuthor(t *testing.T) {
	if CanAuthor(Actor{ID: "u1", Role: RoleStudent}) {
		t.Error("students must not author courses")
	}
	if !CanAuthor(Actor{ID: "u1", Role: RoleInstructor}) {
		t.Error("instructors must author courses")
	}
	if !CanAuthor(Actor{ID: "u1", Role: RoleAdmin}) {
		t.Error("admins must author courses")
	}
}

func TestCanEditCourse(t *testing.T) {
	course := &Course{ID: "c1", InstructorID: "owner"}

	if !CanEditCourse(Actor{ID: "owner", Role: RoleInstructor}, course) {
		t.Error("owner must be able to edit")
	}
	if !CanEditCourse(Actor{ID: "someone", Role: RoleAdmin}, course) {
		t.Error("admin must be able to edit any course")
	}
	if CanEditCourse(Actor{ID: "someone", Role: RoleInstructor}, course) {
		t.Error("non-owning instructor must not edit")
	}
	if CanEditCourse(Actor{ID: "someone", Role: RoleStudent}, course) {
		t.Error("student must not edit")
	}
}

func TestCanViewLessonContent(t *testing.T) {
	course := &Course{ID: "c1", InstructorID: "owner"}

	if !CanViewLessonContent(Actor{ID: "s1", Role: RoleStudent}, course, true) {
		t.Error("enrolled student must see content")
	}
	if CanViewLessonContent(Actor{ID: "s1", Role: RoleStudent}, course, false) {
		t.Error("non-enrolled student must not see content")
	}
	if !CanViewLessonContent(Actor{ID: "owner", Role: RoleInstructor}, course, false) {
		t.Error("owner must see content without enrolling")
	}
}

func TestCourse_Free(t *testing.T) {
	if !(&Course{Price: 0}).Free() {
		t.Error("zero price must be free")
	}
	if (&Course{Price: 49.99}).Free() {
		t.Error("paid course must not be free")
	}
}
