package device

import "testing"

func TestParseBlocks(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		block   string
		want    *Snapshot
		wantErr bool
	}{
		{
			name:  "discharging with level",
			block: " Foo Headset!\nStatus: BATTERY_AVAILABLE\nLevel: 80%",
			want:  &Snapshot{Name: "Foo Headset", Status: Discharging, Battery: Level(80)},
		},
		{
			name:  "charging",
			block: " Foo Headset!\nStatus: BATTERY_CHARGING\nLevel: 55%",
			want:  &Snapshot{Name: "Foo Headset", Status: Charging, Battery: Level(55)},
		},
		{
			name:  "parenthetical suffix stripped",
			block: " Foo Headset (wireless)!\nStatus: BATTERY_AVAILABLE\nLevel: 42%",
			want:  &Snapshot{Name: "Foo Headset", Status: Discharging, Battery: Level(42)},
		},
		{
			name:  "no status marker defaults to disconnected, kept when level present",
			block: " Foo Headset!\nLevel: 30%",
			want:  &Snapshot{Name: "Foo Headset", Status: Disconnected, Battery: Level(30)},
		},
		{
			name:  "unrecognized lines ignored",
			block: " Foo Headset!\nCapabilities: lights\nStatus: BATTERY_AVAILABLE\nLevel: 12%\nEqualizer presets: 4",
			want:  &Snapshot{Name: "Foo Headset", Status: Discharging, Battery: Level(12)},
		},
		{
			name:  "missing name",
			block: "Status: BATTERY_AVAILABLE\nLevel: 80%",
			want:  nil,
		},
		{
			name:  "disconnected without level carries no information",
			block: " Foo Headset!\nStatus: BATTERY_UNAVAILABLE",
			want:  nil,
		},
		{
			name:  "name reduces to nothing after suffix strip",
			block: " (wireless)!\nStatus: BATTERY_AVAILABLE\nLevel: 80%",
			want:  nil,
		},
		{
			name:    "malformed level",
			block:   " Foo Headset!\nStatus: BATTERY_AVAILABLE\nLevel: abc%",
			wantErr: true,
		},
		{
			name:    "level out of range",
			block:   " Foo Headset!\nStatus: BATTERY_AVAILABLE\nLevel: 140%",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.block)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected no snapshot, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a snapshot, got nil")
			}
			if got.Name != tt.want.Name {
				t.Fatalf("Name = %q, want %q", got.Name, tt.want.Name)
			}
			if got.Status != tt.want.Status {
				t.Fatalf("Status = %v, want %v", got.Status, tt.want.Status)
			}
			if !levelEq(got.Battery, tt.want.Battery) {
				t.Fatalf("Battery = %s, want %s", fmtLevel(got.Battery), fmtLevel(tt.want.Battery))
			}
		})
	}
}

func levelEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
