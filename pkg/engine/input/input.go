package input

import (
	"context"
	"io"
	"strings"
	"time"
)

// KeyReader decodes key codes from a terminal stream in raw mode.
type KeyReader struct {
	r       io.Reader
	pending []byte
}

// NewKeyReader wraps r (normally os.Stdin after terminal.MakeRaw).
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: r}
}

// readByte returns a byte pushed back by a previous decode, or reads one.
func (k *KeyReader) readByte() (byte, error) {
	if len(k.pending) > 0 {
		b := k.pending[0]
		k.pending = k.pending[1:]
		return b, nil
	}
	buf := make([]byte, 1)
	if _, err := io.ReadFull(k.r, buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadCode blocks for the next key and returns its code: "arrow_up",
// "enter", "escape", "tab", "quit" for Ctrl+C, or the lower-cased
// character. Unknown escape sequences yield "".
func (k *KeyReader) ReadCode() (string, error) {
	b, err := k.readByte()
	if err != nil {
		return "", err
	}

	switch b {
	case 3:
		return "quit", nil
	case '\r', '\n':
		return "enter", nil
	case '\t':
		return "tab", nil
	case 0x1b:
		return k.readEscape()
	}

	if b >= 32 && b < 127 {
		return strings.ToLower(string(b)), nil
	}
	return "", nil
}

// readEscape handles both CSI (ESC [) and SS3 (ESC O) arrow sequences.
func (k *KeyReader) readEscape() (string, error) {
	b2, err := k.readByte()
	if err != nil {
		return "escape", nil
	}
	if b2 != '[' && b2 != 'O' {
		k.pending = append(k.pending, b2)
		return "escape", nil
	}

	b3, err := k.readByte()
	if err != nil {
		return "", err
	}
	switch b3 {
	case 'A':
		return "arrow_up", nil
	case 'B':
		return "arrow_down", nil
	case 'C':
		return "arrow_right", nil
	case 'D':
		return "arrow_left", nil
	}
	return "", nil
}

// Run reads keys until the stream fails or ctx is cancelled, sending each
// decoded key to out. It closes out on return.
func (k *KeyReader) Run(ctx context.Context, out chan<- RawInput) error {
	defer close(out)
	for {
		code, err := k.ReadCode()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if code == "" {
			continue
		}
		ev := RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}
		select {
		case out <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
