package headsetcontrol

import "testing"

func TestSplitBlocks(t *testing.T) {
	t.Parallel()
	raw := "headsetcontrol version 3.0\n" +
		"Found Foo Headset!\nStatus: BATTERY_AVAILABLE\nLevel: 80%\n" +
		"Found Bar Headset (wireless)!\nStatus: BATTERY_CHARGING\nLevel: 55%\n"

	blocks := SplitBlocks(raw)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 chunks (preamble + 2 devices), got %d: %q", len(blocks), blocks)
	}
	// Discovery order must be preserved.
	if got := blocks[1]; got[:13] != " Foo Headset!" {
		t.Fatalf("first device chunk starts with %q", got[:13])
	}
}

func TestSplitBlocksDropsEmptyChunks(t *testing.T) {
	t.Parallel()
	if got := SplitBlocks(""); len(got) != 0 {
		t.Fatalf("expected no chunks for empty output, got %d", len(got))
	}
	if got := SplitBlocks("Found Foo!\nFound"); len(got) != 1 {
		t.Fatalf("expected trailing empty chunk to be dropped, got %d", len(got))
	}
}
