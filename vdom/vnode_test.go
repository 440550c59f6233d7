package vdom

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type celsius float64

func (c celsius) String() string { return "warm" }

// TestToDisplayString verifies the text shown for interpolated values.
func TestToDisplayString(t *testing.T) {
	n := 7
	var nilPtr *int

	testCases := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "hi", "hi"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"bool", true, "true"},
		{"stringer", celsius(30), "warm"},
		{"error", errors.New("bad"), "bad"},
		{"pointer", &n, "7"},
		{"nil pointer", nilPtr, ""},
		{"slice", []int{1, 2}, "[\n  1,\n  2\n]"},
		{"map", map[string]int{"a": 1}, "{\n  \"a\": 1\n}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToDisplayString(tc.value); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

// TestH_NormalizesChildren verifies the child forms accepted by H.
func TestH_NormalizesChildren(t *testing.T) {
	// Arrange
	var nilNode *VNode
	list := []*VNode{Text("a"), nil, Text("b")}

	// Act
	n := H("div", nil, "x", nilNode, nil, list, 3, H("span", nil))

	// Assert
	var got []string
	for _, c := range n.Children {
		if c.Tag == TextTag {
			got = append(got, c.Content)
		} else {
			got = append(got, "<"+c.Tag+">")
		}
	}
	if diff := cmp.Diff([]string{"x", "a", "b", "3", "<span>"}, got); diff != "" {
		t.Errorf("Children mismatch (-want +got):\n%s", diff)
	}
}

// TestRenderList verifies the expansion of a loop sequence.
func TestRenderList(t *testing.T) {
	// Arrange
	items := []string{"a", "b", "c"}

	// Act
	nodes := RenderList(func(yield func(*VNode) bool) {
		for i, item := range items {
			var n *VNode
			if i != 1 {
				n = Text(item)
			}
			if !yield(n) {
				return
			}
		}
	})

	// Assert
	if len(nodes) != 2 || nodes[0].Content != "a" || nodes[1].Content != "c" {
		t.Errorf("Expected [a c], got %v", nodes)
	}
	if RenderList(slices.Values([]*VNode{})) != nil {
		t.Error("Expected nil for an empty sequence")
	}
}

// TestRenderSlot verifies the slot descriptor.
func TestRenderSlot(t *testing.T) {
	// Act
	withProps := RenderSlot("row", map[string]any{"i": 1}, "fallback")
	bare := RenderSlot("default", nil)

	// Assert
	if withProps.Tag != SlotTag || withProps.Attributes["name"] != "row" {
		t.Errorf("Unexpected slot %+v", withProps)
	}
	if diff := cmp.Diff(map[string]any{"i": 1}, withProps.Attributes["props"]); diff != "" {
		t.Errorf("Props mismatch (-want +got):\n%s", diff)
	}
	if len(withProps.Children) != 1 || withProps.Children[0].Content != "fallback" {
		t.Errorf("Expected the fallback child")
	}
	if _, ok := bare.Attributes["props"]; ok {
		t.Error("Expected no props entry when props is nil")
	}
}

// TestWithModifiers verifies the handler wrapper.
func TestWithModifiers(t *testing.T) {
	// Arrange
	called := false
	handler := func() { called = true }

	// Act
	m := WithModifiers(handler, "stop", "prevent")
	m.Handler.(func())()

	// Assert
	if !called {
		t.Error("Expected the wrapped handler to be callable")
	}
	if diff := cmp.Diff([]string{"stop", "prevent"}, m.Modifiers); diff != "" {
		t.Errorf("Modifiers mismatch (-want +got):\n%s", diff)
	}
}
