package lcd

import "testing"

func TestDecode(t *testing.T) {
	c := Decode(0x91)
	if !c.Enabled || !c.UnsignedTileData || !c.BackgroundEnabled {
		t.Errorf("expected 0x91 to enable the LCD, background and unsigned tile data")
	}
	if c.WindowEnabled || c.SpriteEnabled {
		t.Errorf("expected 0x91 to disable the window and sprites")
	}
	if c.BackgroundTileMapAddress != 0x9800 || c.SpriteHeight != 8 {
		t.Errorf("expected map 0x9800 and 8 pixel sprites, got 0x%04X and %d", c.BackgroundTileMapAddress, c.SpriteHeight)
	}

	c = Decode(0x6C)
	if c.WindowTileMapAddress != 0x9C00 || c.BackgroundTileMapAddress != 0x9C00 || c.SpriteHeight != 16 {
		t.Errorf("expected both maps at 0x9C00 and 16 pixel sprites")
	}
}

func TestController_TileAddress(t *testing.T) {
	tests := []struct {
		lcdc     uint8
		index    uint8
		expected uint16
	}{
		{0x10, 0x00, 0x8000},
		{0x10, 0xFF, 0x8FF0},
		{0x00, 0x00, 0x9000},
		{0x00, 0x7F, 0x97F0},
		{0x00, 0x80, 0x8800},
		{0x00, 0xFF, 0x8FF0},
	}
	for _, tt := range tests {
		if a := Decode(tt.lcdc).TileAddress(tt.index); a != tt.expected {
			t.Errorf("LCDC 0x%02X tile 0x%02X: expected 0x%04X, got 0x%04X", tt.lcdc, tt.index, tt.expected, a)
		}
	}
}
