package whisperx

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestTranscribeFileBuildsUVXInvocation(t *testing.T) {
	svc := NewService(Config{Model: "small", VADMethod: VADMethodSilero}, "")

	var gotName string
	var gotArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	outDir := t.TempDir()
	result, err := svc.TranscribeFile(context.Background(), "/work/alpha.wav", outDir, "english")
	if err != nil {
		t.Fatalf("TranscribeFile: %v", err)
	}

	if gotName != UVXCommand {
		t.Fatalf("expected uvx invocation, got %q", gotName)
	}
	for _, expected := range [][]string{
		{"--model", "small"},
		{"--vad_method", VADMethodSilero},
		{"--language", "en"},
		{"--device", CPUDevice},
	} {
		idx := slices.Index(gotArgs, expected[0])
		if idx < 0 || idx+1 >= len(gotArgs) || gotArgs[idx+1] != expected[1] {
			t.Fatalf("expected %v in args, got %v", expected, gotArgs)
		}
	}
	if slices.Contains(gotArgs, "--hf_token") {
		t.Fatal("hf_token should not be passed without pyannote")
	}
	if filepath.Base(result.JSONPath) != "alpha.json" {
		t.Fatalf("unexpected json path %q", result.JSONPath)
	}
}

func TestBuildArgsPassesTokenForPyannote(t *testing.T) {
	svc := NewService(Config{VADMethod: VADMethodPyannote, HFToken: "hf_secret", CUDAEnabled: true}, "")
	args := svc.buildArgs("/work/a.wav", "/work", "en")

	tokenIdx := slices.Index(args, "--hf_token")
	if tokenIdx < 0 || args[tokenIdx+1] != "hf_secret" {
		t.Fatalf("expected hf token in args, got %v", args)
	}
	deviceIdx := slices.Index(args, "--device")
	if deviceIdx < 0 || args[deviceIdx+1] != CUDADevice {
		t.Fatalf("expected cuda device, got %v", args)
	}
}

func TestLoadSegments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	payload := `{"segments":[{"text":" Hello there. ","start":0.5,"end":3.2,"words":[{"word":"Hello","start":0.5,"end":1.1}]},{"text":"Second.","start":3.4,"end":5.0}]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write json: %v", err)
	}

	segs, err := LoadSegments(path)
	if err != nil {
		t.Fatalf("LoadSegments: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].End != 3.2 || len(segs[0].Words) != 1 {
		t.Fatalf("unexpected first segment: %#v", segs[0])
	}

	text, err := loadTranscriptText(path)
	if err != nil {
		t.Fatalf("loadTranscriptText: %v", err)
	}
	if text != "Hello there. Second." {
		t.Fatalf("unexpected text %q", text)
	}
}
