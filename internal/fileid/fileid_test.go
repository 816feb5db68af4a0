package fileid

import (
	"strings"
	"testing"
)

func TestReportID(t *testing.T) {
	id1 := ReportID([]byte("Disease: Fever"))
	id2 := ReportID([]byte("Disease: Fever"))
	if id1 != id2 {
		t.Errorf("same content should give same ID: %q vs %q", id1, id2)
	}
	if !strings.HasPrefix(id1, reportPrefix) {
		t.Errorf("ID should have prefix %q: got %q", reportPrefix, id1)
	}
	if len(id1) != len(reportPrefix)+64 {
		t.Errorf("unexpected ID length: %q", id1)
	}
}

func TestReportID_differentContent(t *testing.T) {
	if ReportID([]byte("a")) == ReportID([]byte("b")) {
		t.Error("different content should give different IDs")
	}
	if ReportID(nil) == "" {
		t.Error("empty content should still get an ID")
	}
}

func TestInboxConversationID(t *testing.T) {
	id1 := InboxConversationID("/srv/inbox")
	id2 := InboxConversationID("/srv/inbox/")
	id3 := InboxConversationID("/srv/./inbox")
	if id1 != id2 || id1 != id3 {
		t.Errorf("cleaned paths should match: %q %q %q", id1, id2, id3)
	}
	if InboxConversationID("/srv/other") == id1 {
		t.Error("different dirs should give different IDs")
	}
	if !strings.HasPrefix(id1, inboxPrefix) || len(id1) != len(inboxPrefix)+32 {
		t.Errorf("unexpected ID: %q", id1)
	}
}
