package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		want      []string
		wantNot   []string
		wantLines int
	}{
		{
			name:      "default hides debug",
			opts:      Options{},
			want:      []string{"level=INFO", `msg="building container image"`, "tag=openwrt:r1"},
			wantNot:   []string{"merged template", "manual="},
			wantLines: 2,
		},
		{
			name:      "verbose shows template merges",
			opts:      Options{Verbose: true},
			want:      []string{"level=DEBUG", `msg="merged template"`, "template=base"},
			wantLines: 3,
		},
		{
			name:      "manual tags every record",
			opts:      Options{Manual: true},
			want:      []string{"manual=true", "tag=openwrt:r1"},
			wantNot:   []string{"merged template"},
			wantLines: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Setup(&buf, tt.opts)
			t.Cleanup(func() { Setup(nil, Options{}) })

			Debug("merged template", "template", "base")
			Info("building container image", "tag", "openwrt:r1")
			Warn("gunzip reported trailing data", "file", "r1.img.gz")

			output := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.wantNot {
				if strings.Contains(output, unwanted) {
					t.Errorf("output should not contain %q:\n%s", unwanted, output)
				}
			}
			if manual := strings.Count(output, "manual=true"); tt.opts.Manual && manual != tt.wantLines {
				t.Errorf("manual=true on %d records, want %d", manual, tt.wantLines)
			}
			if got := strings.Count(output, "\n"); got != tt.wantLines {
				t.Errorf("got %d records, want %d:\n%s", got, tt.wantLines, output)
			}
		})
	}
}

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, Options{JSON: true, Manual: true})
	t.Cleanup(func() { Setup(nil, Options{}) })

	Info("building firmware", "name", "r1", "packages", 6)

	var record struct {
		Level    string `json:"level"`
		Msg      string `json:"msg"`
		Name     string `json:"name"`
		Packages int    `json:"packages"`
		Manual   bool   `json:"manual"`
	}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not a JSON record: %v\n%s", err, buf.String())
	}
	if record.Level != "INFO" || record.Msg != "building firmware" || record.Name != "r1" || record.Packages != 6 || !record.Manual {
		t.Errorf("record = %+v", record)
	}
}

func TestSetup_NilWriter(t *testing.T) {
	Setup(nil, Options{Verbose: true})
	t.Cleanup(func() { Setup(nil, Options{}) })

	if Logger == nil {
		t.Fatal("Logger should not be nil after Setup with a nil writer")
	}
	if !Logger.Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("verbose logger should enable debug records")
	}
}

func TestUserOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	SetUserOutput(&out, &errOut)
	defer SetUserOutput(nil, nil)

	UserInfo("staging %d files", 3)
	UserSuccess("image %s built", "r1")
	UserWarning("keeping %s", "Dockerfile")
	UserError("failed: %v", "boom")

	if got, want := out.String(), "ℹ staging 3 files\n✓ image r1 built\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if got, want := errOut.String(), "⚠ keeping Dockerfile\n✗ failed: boom\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}
