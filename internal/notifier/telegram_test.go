package notifier

import (
	"fmt"
	"strings"
	"testing"
)

func TestTruncateReportShortMessage(t *testing.T) {
	text := "📊 <b>Relatório — Mês</b>\nMeta: R$ 4000000.00"
	if got := truncateReport(text); got != text {
		t.Errorf("short message changed: %q", got)
	}
}

func TestTruncateReportLongReport(t *testing.T) {
	var b strings.Builder
	b.WriteString("📊 <b>Relatório — Mês</b>\n")
	for i := 0; b.Len() <= maxMessageLen+500; i++ {
		fmt.Fprintf(&b, "Apresentação %d: 40 / 71.43\n", i)
	}
	long := b.String()

	got := truncateReport(long)
	if len(got) > maxMessageLen {
		t.Fatalf("truncated message still %d bytes, cap is %d", len(got), maxMessageLen)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated message missing continuation marker: %q", got[len(got)-20:])
	}
	// stage rows must never be split mid-line
	prefix := strings.TrimSuffix(got, "\n…")
	if !strings.HasPrefix(long, prefix+"\n") {
		t.Errorf("truncation cut a line in half")
	}
}

func TestCanonicalCommand(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		handled bool
	}{
		{"/report", "/report", true},
		{"/goal", "/goal", true},
		{"/focus", "/focus", true},
		{"relatório", "/report", true},
		{"Relatorio", "/report", true},
		{"META", "/goal", true},
		{"foco", "/focus", true},
		{"ajuda", "/help", true},
		{"/focus@SalesRadarBot", "/focus", true},
		{"  /report  ", "/report", true},
		{"bom dia pessoal", "", false},
		{"fechei a venda do apartamento", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, handled := canonicalCommand(tt.input)
		if handled != tt.handled || got != tt.want {
			t.Errorf("canonicalCommand(%q) = (%q, %v), want (%q, %v)",
				tt.input, got, handled, tt.want, tt.handled)
		}
	}
}
