package inspect

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/taku2365/llm-camera/internal/config"
	"github.com/taku2365/llm-camera/internal/model"
	"github.com/taku2365/llm-camera/internal/report"
)

// proRAWBytes builds a minimal little-endian DNG header: dimensions,
// LinearRaw photometric interpretation, and an Apple model string.
func proRAWBytes() []byte {
	const modelStr = "iPhone 12 Pro Max\x00"
	var buf bytes.Buffer
	le := binary.LittleEndian

	buf.WriteString("II\x2a\x00")
	hdr := make([]byte, 4)
	le.PutUint32(hdr, 8)
	buf.Write(hdr)

	entries := 4
	tailStart := uint32(8 + 2 + entries*12 + 4)

	cnt := make([]byte, 2)
	le.PutUint16(cnt, uint16(entries))
	buf.Write(cnt)

	writeEntry := func(tag, typ uint16, count, value uint32) {
		p := make([]byte, 12)
		le.PutUint16(p[0:2], tag)
		le.PutUint16(p[2:4], typ)
		le.PutUint32(p[4:8], count)
		le.PutUint32(p[8:12], value)
		buf.Write(p)
	}
	writeEntry(256, 4, 1, 4032)                          // ImageWidth LONG
	writeEntry(257, 4, 1, 3024)                          // ImageLength LONG
	writeEntry(262, 3, 1, 34892)                         // Photometric SHORT = LinearRaw
	writeEntry(272, 2, uint32(len(modelStr)), tailStart) // Model ASCII

	buf.Write(make([]byte, 4)) // next IFD offset
	buf.WriteString(modelStr)
	return buf.Bytes()
}

func testConfig() config.InspectConfig {
	return config.InspectConfig{
		// Definitely not on PATH: enrichment must degrade silently.
		ExiftoolPath: "rawprobe-no-such-exiftool",
		ReportName:   "test_results.json",
		SummaryName:  "README.md",
	}
}

func runInspector(t *testing.T, cfg config.InspectConfig, dir string) (model.InspectReport, string) {
	t.Helper()
	var out bytes.Buffer
	ins := New(cfg, report.NewConsole(&out))
	rep, err := ins.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return rep, out.String()
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "IMG_0001_1x.DNG"), proRAWBytes(), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "IMG_0002_2.5x.DNG"), []byte("not a tiff"), 0644); err != nil {
		t.Fatal(err)
	}

	rep, out := runInspector(t, testConfig(), dir)

	// One record per matching file.
	if len(rep.Files) != 2 {
		t.Fatalf("expected 2 records, got %d", len(rep.Files))
	}

	first := rep.Files[0]
	if first.Name != "IMG_0001_1x.DNG" {
		t.Errorf("first record = %q, want sorted order", first.Name)
	}
	if first.Lens != "Wide (1x)" {
		t.Errorf("lens = %q, want Wide (1x)", first.Lens)
	}
	if !first.LibRawCompatible {
		t.Error("expected .DNG file to be compatible")
	}
	if first.DNG == nil {
		t.Fatal("expected header probe to succeed on valid TIFF")
	}
	if first.DNG.Width != 4032 || first.DNG.Height != 3024 {
		t.Errorf("probe dims = %dx%d", first.DNG.Width, first.DNG.Height)
	}
	if first.DeviceID == nil || *first.DeviceID != 2 {
		t.Errorf("expected device id 2 from header probe model, got %v", first.DeviceID)
	}
	if !hasNote(first.Notes, "iPhone device detected") {
		t.Errorf("missing iPhone note: %v", first.Notes)
	}
	if !hasNote(first.Notes, "Linear DNG") {
		t.Errorf("missing Linear DNG note: %v", first.Notes)
	}

	// Garbage file: probe fails, enrichment absent, still recorded.
	second := rep.Files[1]
	if second.DNG != nil || second.Exif != nil {
		t.Error("expected no enrichment on garbage file")
	}
	if second.DeviceID != nil {
		t.Error("expected no device id without model info")
	}
	if !hasNote(second.Notes, "Device detection may be needed") {
		t.Errorf("missing fallback note: %v", second.Notes)
	}

	// Reports written into the directory.
	var decoded model.InspectReport
	data, err := os.ReadFile(filepath.Join(dir, "test_results.json"))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report not valid JSON: %v", err)
	}
	if len(decoded.Files) != 2 {
		t.Fatalf("JSON report has %d files, want 2", len(decoded.Files))
	}

	md, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	if !strings.Contains(string(md), "IMG_0001_1x.DNG") {
		t.Error("summary missing file row")
	}

	// Console output.
	for _, want := range []string{
		"iPhone ProRAW DNG Test Report",
		"Found 2 DNG files",
		"Analyzing: IMG_0001_1x.DNG",
		"Total files tested: 2",
		"LibRaw compatible: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q", want)
		}
	}
}

func TestRunEmptyDir(t *testing.T) {
	dir := t.TempDir()
	rep, _ := runInspector(t, testConfig(), dir)
	if len(rep.Files) != 0 {
		t.Fatalf("expected 0 records, got %d", len(rep.Files))
	}
	if _, err := os.Stat(filepath.Join(dir, "test_results.json")); err != nil {
		t.Error("report should be written even for an empty directory")
	}
}

func TestRunMissingDir(t *testing.T) {
	var out bytes.Buffer
	ins := New(testConfig(), report.NewConsole(&out))
	if _, err := ins.Run(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestRunWithExiftool(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts need a POSIX shell")
	}

	toolDir := t.TempDir()
	fake := filepath.Join(toolDir, "fake-exiftool")
	script := `#!/bin/sh
cat <<'EOF'
[{"Make": "Apple", "Model": "iPhone 12 Pro Max", "ISO": 100, "DNGVersion": "1.6.0.0"}]
EOF
`
	if err := os.WriteFile(fake, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "IMG_0003.DNG"), []byte("junk"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.ExiftoolPath = fake
	rep, _ := runInspector(t, cfg, dir)

	rec := rep.Files[0]
	if rec.Exif == nil {
		t.Fatal("expected exif enrichment")
	}
	if rec.Exif.Model != "iPhone 12 Pro Max" {
		t.Errorf("Model = %q", rec.Exif.Model)
	}
	if rec.DeviceID == nil || *rec.DeviceID != 2 {
		t.Error("expected device id 2 from exif model")
	}
	if !hasNote(rec.Notes, "DNG Version: 1.6.0.0") {
		t.Errorf("missing DNG version note: %v", rec.Notes)
	}
}

func hasNote(notes []string, substr string) bool {
	for _, n := range notes {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}
