package cmd

import (
	"reflect"
	"testing"

	"github.com/gurisko/vm/internal/dispatch"
)

func TestParseForward(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		atDash  int
		cmdline string
		want    dispatch.Request
		wantErr bool
	}{
		{
			name:   "subcommand",
			args:   []string{"web", "up"},
			atDash: -1,
			want:   dispatch.RunVagrant{Name: "web", Command: "up", Options: []string{}},
		},
		{
			name:   "subcommand with options",
			args:   []string{"web", "ssh", "-L", "8080:localhost:8080"},
			atDash: -1,
			want:   dispatch.RunVagrant{Name: "web", Command: "ssh", Options: []string{"-L", "8080:localhost:8080"}},
		},
		{
			name:   "name only",
			args:   []string{"web"},
			atDash: -1,
			want:   dispatch.RawVagrant{Name: "web"},
		},
		{
			name:   "raw after dash",
			args:   []string{"web", "--", "ssh", "--", "-A"},
			atDash: -1,
			want:   dispatch.RawVagrant{Name: "web", Options: []string{"ssh", "--", "-A"}},
		},
		{
			name:   "command line after name",
			args:   []string{"web", "-c", `ssh -c "uname -a"`},
			atDash: -1,
			want:   dispatch.RawVagrant{Name: "web", Options: []string{"ssh", "-c", "uname -a"}},
		},
		{
			name:   "command line with equals",
			args:   []string{"web", "--command=plugin list"},
			atDash: -1,
			want:   dispatch.RawVagrant{Name: "web", Options: []string{"plugin", "list"}},
		},
		{
			name:    "command line before name",
			args:    []string{"web"},
			atDash:  -1,
			cmdline: "snapshot save 'before upgrade'",
			want:    dispatch.RawVagrant{Name: "web", Options: []string{"snapshot", "save", "before upgrade"}},
		},
		{
			name:   "global",
			args:   []string{"global-status", "--prune"},
			atDash: 0,
			want:   dispatch.GlobalVagrant{Options: []string{"global-status", "--prune"}},
		},
		{name: "no name", args: []string{}, atDash: -1, wantErr: true},
		{name: "dangling -c", args: []string{"web", "-c"}, atDash: -1, wantErr: true},
		{name: "extra after -c", args: []string{"web", "-c", "up", "extra"}, atDash: -1, wantErr: true},
		{name: "-c twice", args: []string{"web", "-c", "up"}, atDash: -1, cmdline: "halt", wantErr: true},
		{name: "unterminated quote", args: []string{"web", "-c", `ssh "oops`}, atDash: -1, wantErr: true},
		{name: "global with -c", args: []string{"up"}, atDash: 0, cmdline: "halt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseForward(tt.args, tt.atDash, tt.cmdline)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %#v, got %#v", tt.want, got)
			}
		})
	}
}
