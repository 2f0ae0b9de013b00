package suite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
)

const (
	KindCommand = "command"
	KindHTTP    = "http"
	KindFile    = "file"
)

// Target is one benchmarkable workload. Size is only meaningful after a
// successful Run, and only when Sized reports true.
type Target interface {
	Name() string
	Kind() string
	Run(ctx context.Context) error
	Sized() bool
	Size() (uint64, error)
}

type countingWriter struct {
	out io.Writer
	n   uint64
}

func (writer *countingWriter) Write(p []byte) (int, error) {
	n, err := writer.out.Write(p)
	writer.n += uint64(n)
	return n, err
}

type CommandTarget struct {
	name        string
	argv        []string
	sizeFile    string
	countStdout bool

	// Stdout receives the command's output; nil discards it.
	Stdout io.Writer

	stdout countingWriter
}

func NewCommandTarget(name string, argv []string, sizeFile string, countStdout bool) *CommandTarget {
	return &CommandTarget{
		name:        name,
		argv:        argv,
		sizeFile:    sizeFile,
		countStdout: countStdout,
	}
}

func (target *CommandTarget) Name() string { return target.name }
func (target *CommandTarget) Kind() string { return KindCommand }

func (target *CommandTarget) Run(ctx context.Context) error {
	if len(target.argv) == 0 {
		return fmt.Errorf("empty command")
	}

	out := target.Stdout
	if out == nil {
		out = io.Discard
	}
	target.stdout = countingWriter{out: out}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, target.argv[0], target.argv[1:]...)
	cmd.Stdout = &target.stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", target.argv[0], err, msg)
		}
		return fmt.Errorf("%s: %w", target.argv[0], err)
	}
	return nil
}

func (target *CommandTarget) Sized() bool {
	return target.sizeFile != "" || target.countStdout
}

// Size prefers the size of the configured output file over the stdout count.
func (target *CommandTarget) Size() (uint64, error) {
	if target.sizeFile != "" {
		info, err := os.Stat(target.sizeFile)
		if err != nil {
			return 0, fmt.Errorf("stat size file: %w", err)
		}
		return uint64(info.Size()), nil
	}
	return target.stdout.n, nil
}

type HTTPTarget struct {
	name   string
	url    string
	client *http.Client

	received uint64
}

func NewHTTPTarget(name string, url string, client *http.Client) *HTTPTarget {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPTarget{name: name, url: url, client: client}
}

func (target *HTTPTarget) Name() string { return target.name }
func (target *HTTPTarget) Kind() string { return KindHTTP }
func (target *HTTPTarget) Sized() bool  { return true }

func (target *HTTPTarget) Run(ctx context.Context) error {
	target.received = 0

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.url, nil)
	if err != nil {
		return err
	}

	resp, err := target.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP Error: status code %d", resp.StatusCode)
	}

	counter := countingWriter{out: io.Discard}
	if _, err := io.Copy(&counter, resp.Body); err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	target.received = counter.n
	return nil
}

func (target *HTTPTarget) Size() (uint64, error) {
	return target.received, nil
}

const fileReadBufferSize = 1 << 20

type FileTarget struct {
	name string
	path string

	read uint64
}

func NewFileTarget(name string, path string) *FileTarget {
	return &FileTarget{name: name, path: path}
}

func (target *FileTarget) Name() string { return target.name }
func (target *FileTarget) Kind() string { return KindFile }
func (target *FileTarget) Sized() bool  { return true }

func (target *FileTarget) Run(ctx context.Context) error {
	target.read = 0

	file, err := os.Open(target.path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buffer := make([]byte, fileReadBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := file.Read(buffer)
		target.read += uint64(n)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
	}
}

func (target *FileTarget) Size() (uint64, error) {
	return target.read, nil
}
