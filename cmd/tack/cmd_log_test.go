package main

import (
	"testing"

	"github.com/AlexanderThaller/tack/pkg/object"
)

func TestBuildDecoration(t *testing.T) {
	head := object.Hash("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	other := object.Hash("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")

	cases := []struct {
		name     string
		hash     object.Hash
		headHash object.Hash
		branch   string
		want     string
	}{
		{"head with branch", head, head, "main", "(HEAD -> main)"},
		{"head detached", head, head, "", "(HEAD)"},
		{"non-head commit", other, head, "main", ""},
		{"unresolved head", head, "", "main", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := buildDecoration(c.hash, c.headHash, c.branch); got != c.want {
				t.Errorf("buildDecoration = %q, want %q", got, c.want)
			}
		})
	}
}
