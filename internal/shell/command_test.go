package shell

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_SplitText_Keeps_Rest_Verbatim_When_Positional_Taken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rest string
		n    int
		want []string
	}{
		{name: "empty text", rest: "", n: 0, want: []string{""}},
		{name: "text only", rest: "Robot   App", n: 0, want: []string{"Robot   App"}},
		{name: "padded text", rest: "  Robot App ", n: 0, want: []string{"  Robot App "}},
		{name: "whitespace text", rest: "   ", n: 0, want: []string{"   "}},
		{name: "id and text", rest: " P1 New  Name", n: 1, want: []string{"P1", "New  Name"}},
		{name: "id without text", rest: " P1", n: 1, want: []string{"P1", ""}},
		{name: "id and padded text", rest: "P1  Name ", n: 1, want: []string{"P1", " Name "}},
		{name: "missing id", rest: "   ", n: 1, want: []string{}},
		{name: "tab separated", rest: "P1\tName", n: 1, want: []string{"P1", "Name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := splitText(tt.rest, tt.n)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("splitText(%q, %d) mismatch (-want +got):\n%s", tt.rest, tt.n, diff)
			}
		})
	}
}
