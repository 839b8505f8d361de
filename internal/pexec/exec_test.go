/*
© 2025–present remote-shell-go contributors
ISC License
*/

package pexec

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/akoQassym/remote-shell-go/internal/shellparse"
)

func TestExecSingleCapturesStdout(t *testing.T) {
	var out, errOut bytes.Buffer
	var cmd = shellparse.Command{Arguments: []string{"echo", "hello"}}
	if err := ExecSingle(context.Background(), cmd, &out, &errOut); err != nil {
		t.Fatalf("ExecSingle err: %v", err)
	}
	if out.String() != "hello\n" {
		t.Errorf("stdout: got %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("stderr: got %q", errOut.String())
	}
}

func TestExecSingleOutputRedirection(t *testing.T) {
	var dir = t.TempDir()
	var path = filepath.Join(dir, "out.txt")
	var out, errOut bytes.Buffer
	var cmd = shellparse.Command{Arguments: []string{"echo", "hi"}, OutputFile: path}
	if err := ExecSingle(context.Background(), cmd, &out, &errOut); err != nil {
		t.Fatalf("ExecSingle err: %v", err)
	}
	var data, readErr = os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("ReadFile: %v", readErr)
	}
	if string(data) != "hi\n" {
		t.Errorf("file contents: got %q", data)
	}
	if out.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", out.String())
	}
}

func TestExecSingleMissingInputFile(t *testing.T) {
	var out, errOut bytes.Buffer
	var cmd = shellparse.Command{Arguments: []string{"cat"}, InputFile: "/nonexistent/path/x"}
	if err := ExecSingle(context.Background(), cmd, &out, &errOut); err == nil {
		t.Fatal("expected error for missing input file")
	}
	if errOut.Len() == 0 {
		t.Error("expected diagnostic written to stderr")
	}
}

func TestExecSingleLaunchFailure(t *testing.T) {
	var out, errOut bytes.Buffer
	var cmd = shellparse.Command{Arguments: []string{"this-program-does-not-exist-xyz"}}
	if err := ExecSingle(context.Background(), cmd, &out, &errOut); err == nil {
		t.Fatal("expected error for nonexistent program")
	}
	if errOut.Len() == 0 {
		t.Error("expected diagnostic written to stderr for launch failure")
	}
}

func TestExecSingleNonZeroExitNotDiagnosed(t *testing.T) {
	var out, errOut bytes.Buffer
	var cmd = shellparse.Command{Arguments: []string{"sh", "-c", "echo oops 1>&2; exit 3"}}
	if err := ExecSingle(context.Background(), cmd, &out, &errOut); err == nil {
		t.Fatal("expected non-nil error for non-zero exit")
	}
	if errOut.String() != "oops\n" {
		t.Errorf("stderr should carry only the program's own output, got %q", errOut.String())
	}
}

func TestExecPipelineTwoStages(t *testing.T) {
	var out, errOut bytes.Buffer
	var cmds = []shellparse.Command{
		{Arguments: []string{"echo", "hello world"}},
		{Arguments: []string{"wc", "-w"}},
	}
	if err := ExecPipeline(context.Background(), cmds, &out, &errOut); err != nil {
		t.Fatalf("ExecPipeline err: %v", err)
	}
	if bytes.TrimSpace(out.Bytes())[0] != '2' {
		t.Errorf("word count: got %q", out.String())
	}
}

func TestExecPipelineHeadInputTailOutput(t *testing.T) {
	var dir = t.TempDir()
	var inPath = filepath.Join(dir, "in.txt")
	var outPath = filepath.Join(dir, "out.txt")
	if err := os.WriteFile(inPath, []byte("b\na\nc\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	var out, errOut bytes.Buffer
	var cmds = []shellparse.Command{
		{Arguments: []string{"cat"}, InputFile: inPath},
		{Arguments: []string{"sort"}, OutputFile: outPath},
	}
	if err := ExecPipeline(context.Background(), cmds, &out, &errOut); err != nil {
		t.Fatalf("ExecPipeline err: %v", err)
	}
	var data, readErr = os.ReadFile(outPath)
	if readErr != nil {
		t.Fatalf("ReadFile: %v", readErr)
	}
	if string(data) != "a\nb\nc\n" {
		t.Errorf("sorted output: got %q", data)
	}
}

func TestExecPipelineThreeStages(t *testing.T) {
	var out, errOut bytes.Buffer
	var cmds = []shellparse.Command{
		{Arguments: []string{"printf", "b\\na\\nc\\n"}},
		{Arguments: []string{"sort"}},
		{Arguments: []string{"head", "-n", "1"}},
	}
	if err := ExecPipeline(context.Background(), cmds, &out, &errOut); err != nil {
		t.Fatalf("ExecPipeline err: %v", err)
	}
	if out.String() != "a\n" {
		t.Errorf("got %q want %q", out.String(), "a\n")
	}
}
