/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

import (
	"context"
	"testing"

	"github.com/suparena/resthub/errors"
)

func TestCatalogRegister(t *testing.T) {
	t.Run("DerivesPackage", func(t *testing.T) {
		c := New()
		if err := c.Register(Class{Name: "example.com/app/model.User"}); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		class, ok := c.Lookup("example.com/app/model.User")
		if !ok {
			t.Fatal("Expected class to be registered")
		}
		if class.Package != "example.com/app/model" {
			t.Fatalf("Expected package example.com/app/model, got %q", class.Package)
		}
		if class.SimpleName() != "User" {
			t.Fatalf("Expected simple name User, got %q", class.SimpleName())
		}
	})

	t.Run("IdenticalRegistrationIsNoop", func(t *testing.T) {
		c := New()
		class := Class{Name: "example.com/m.User", Markers: []string{"entity"}}
		if err := c.Register(class); err != nil {
			t.Fatalf("First registration failed: %v", err)
		}
		if err := c.Register(class); err != nil {
			t.Fatalf("Second registration failed: %v", err)
		}
		if c.Len() != 1 {
			t.Fatalf("Expected 1 class, got %d", c.Len())
		}
	})

	t.Run("ConflictingRegistration", func(t *testing.T) {
		c := New()
		c.MustRegister(Class{Name: "example.com/m.User"})
		err := c.Register(Class{Name: "example.com/m.User", Abstract: true})
		if !errors.IsAlreadyExists(err) {
			t.Fatalf("Expected already exists error, got %v", err)
		}
	})

	t.Run("InvalidNames", func(t *testing.T) {
		c := New()
		for _, name := range []string{"", "User", "example.com/m.", "example.com/m"} {
			if err := c.Register(Class{Name: name}); err == nil {
				t.Errorf("Expected error for name %q", name)
			}
		}
		if err := c.Register(Class{Name: "example.com/m.User", Package: "example.com/other"}); err == nil {
			t.Error("Expected error for mismatched package")
		}
	})

	t.Run("InterfaceIsAbstract", func(t *testing.T) {
		c := New()
		c.MustRegister(Class{Name: "example.com/m.Named", Interface: true})
		class, _ := c.Lookup("example.com/m.Named")
		if !class.Abstract || class.Instantiable() {
			t.Fatalf("Expected interface class to be abstract, got %+v", class)
		}
	})

	t.Run("MustRegisterPanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("Expected panic")
			}
		}()
		New().MustRegister(Class{Name: "bad"})
	})

	t.Run("LookupReturnsCopy", func(t *testing.T) {
		c := New()
		c.MustRegister(Class{Name: "example.com/m.User", Markers: []string{"entity"}})
		class, _ := c.Lookup("example.com/m.User")
		class.Markers[0] = "mutated"
		again, _ := c.Lookup("example.com/m.User")
		if again.Markers[0] != "entity" {
			t.Fatalf("Catalog state changed through lookup copy: %v", again.Markers)
		}
	})
}

func TestCatalogMarkers(t *testing.T) {
	c := New()
	c.MustRegister(Class{Name: "example.com/m.User", Markers: []string{"entity"}})

	info, ok := c.Marker("entity")
	if !ok || info.Inherited {
		t.Fatalf("Expected implicit non-inherited marker, got %+v (ok=%t)", info, ok)
	}

	if err := c.DeclareMarker("entity", true); err != nil {
		t.Fatalf("Explicit declaration over implicit failed: %v", err)
	}
	info, _ = c.Marker("entity")
	if !info.Inherited {
		t.Fatal("Expected marker to be inherited after explicit declaration")
	}

	if err := c.DeclareMarker("entity", false); err == nil {
		t.Fatal("Expected conflicting explicit declaration to fail")
	}
	if err := c.DeclareMarker("entity", true); err != nil {
		t.Fatalf("Repeated identical declaration failed: %v", err)
	}
	if err := c.DeclareMarker(" ", false); !errors.IsValidationError(err) {
		t.Fatalf("Expected validation error for blank marker, got %v", err)
	}
	if _, ok := c.Marker("unknown"); ok {
		t.Fatal("Expected unknown marker to be absent")
	}
}

func TestCatalogEnumerate(t *testing.T) {
	c := New()
	c.MustRegister(
		Class{Name: "example.com/app/model.User"},
		Class{Name: "example.com/app/model/audit.Entry"},
		Class{Name: "example.com/app/modelx.Other"},
		Class{Name: "example.com/lib.Helper"},
	)
	ctx := context.Background()

	tests := []struct {
		root     string
		expected []string
	}{
		{"example.com/app/model", []string{"example.com/app/model.User", "example.com/app/model/audit.Entry"}},
		{"example.com/app/model/", []string{"example.com/app/model.User", "example.com/app/model/audit.Entry"}},
		{"example.com/app/model/audit", []string{"example.com/app/model/audit.Entry"}},
		{"example.com/missing", nil},
		{"", []string{
			"example.com/app/model.User",
			"example.com/app/model/audit.Entry",
			"example.com/app/modelx.Other",
			"example.com/lib.Helper",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			classes, err := c.Enumerate(ctx, tt.root)
			if err != nil {
				t.Fatalf("Enumerate failed: %v", err)
			}
			if len(classes) != len(tt.expected) {
				t.Fatalf("Expected %d classes, got %d", len(tt.expected), len(classes))
			}
			for i, class := range classes {
				if class.Name != tt.expected[i] {
					t.Errorf("Expected %q at %d, got %q", tt.expected[i], i, class.Name)
				}
			}
		})
	}

	c.Reset()
	if c.Len() != 0 {
		t.Fatalf("Expected empty catalog after reset, got %d", c.Len())
	}
}

func TestNames(t *testing.T) {
	n := NewNames("b", "a", "b")
	if n.Len() != 2 {
		t.Fatalf("Expected 2 names, got %d", n.Len())
	}
	u := n.Union(NewNames("c", "a"))
	if got := u.Sorted(); len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("Unexpected union %v", got)
	}
	if n.Has("c") {
		t.Fatal("Union must not modify the receiver")
	}
}
