package repl

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line    string
		want    []string
		wantErr bool
	}{
		{"dashboard", []string{"dashboard"}, false},
		{"  trip   settlement 3 ", []string{"trip", "settlement", "3"}, false},
		{`trip create --name "Tokyo 2026"`, []string{"trip", "create", "--name", "Tokyo 2026"}, false},
		{`request POST /api/trips -d '{"name":"x"}'`, []string{"request", "POST", "/api/trips", "-d", `{"name":"x"}`}, false},
		{`payment add 1 -d dinner\ party`, []string{"payment", "add", "1", "-d", "dinner party"}, false},
		{`trip create --name ""`, []string{"trip", "create", "--name", ""}, false},
		{`trip create --name "open`, nil, true},
		{`trailing\`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := SplitArgs(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunExecutesLines(t *testing.T) {
	in := strings.NewReader("dashboard\n\n# comment\ntrip settlement 4\nhistory\nexit\nnever reached\n")
	var out bytes.Buffer
	var got [][]string

	r := New(Config{
		In:  in,
		Out: &out,
		Execute: func(_ context.Context, args []string) error {
			got = append(got, args)
			return nil
		},
	})
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := [][]string{{"dashboard"}, {"trip", "settlement", "4"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("executed %q, want %q", got, want)
	}
	if !strings.Contains(out.String(), "    2  trip settlement 4") {
		t.Errorf("history not printed:\n%s", out.String())
	}
	if strings.Count(out.String(), DefaultPrompt) != 6 {
		t.Errorf("prompts:\n%s", out.String())
	}
}

func TestRunReportsErrorsAndContinues(t *testing.T) {
	in := strings.NewReader("bad\ngood\n")
	var out bytes.Buffer
	calls := 0

	r := New(Config{
		In:  in,
		Out: &out,
		Execute: func(_ context.Context, args []string) error {
			calls++
			if args[0] == "bad" {
				return errors.New("boom")
			}
			return nil
		},
	})
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d", calls)
	}
	if !strings.Contains(out.String(), "error: boom") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	r := New(Config{
		In:  strings.NewReader("one\ntwo\n"),
		Out: io.Discard,
		Execute: func(context.Context, []string) error {
			calls++
			cancel()
			return nil
		},
	})
	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSharedInputKeepsOneBuffer(t *testing.T) {
	in := SharedInput(strings.NewReader("status\ny\n"))
	if SharedInput(in) != in {
		t.Fatal("wrapping twice should return the same reader")
	}

	var out bytes.Buffer
	var answer string
	r := New(Config{
		In:  in,
		Out: &out,
		Execute: func(ctx context.Context, args []string) error {
			// A command prompting mid-session reads the next line.
			line, _ := bufio.NewReader(in).ReadString('\n')
			answer = strings.TrimSpace(line)
			return nil
		},
	})
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if answer != "y" {
		t.Errorf("prompt read %q, want y", answer)
	}
}
