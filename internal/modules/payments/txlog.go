package payments

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TxLog is the append-only audit trail of webhook terminal outcomes: one line
// per outcome, one file per UTC day. It is advisory; the database stays
// authoritative, so append failures are reported but never fail a request.
type TxLog struct {
	dir string

	mu  sync.Mutex
	now func() time.Time
}

func NewTxLog(dir string) *TxLog {
	return &TxLog{dir: dir, now: time.Now}
}

func (l *TxLog) Append(outcome, detail string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().UTC()

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return err
	}

	name := filepath.Join(l.dir, "transactions_"+now.Format("20060102")+".log")
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	line := fmt.Sprintf("%s - %s - %s\n", now.Format("2006-01-02 15:04:05"), outcome, detail)
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
