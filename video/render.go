package video

import "github.com/mbuck85/gbcore/addr"

// renderScanline implements spec.md §4.4's two-pass scanline renderer: a
// background/window pass that also records each pixel's background color
// index (needed for OBJ-over-BG priority), followed by a sprite pass.
func (p *PPU) renderScanline() {
	ly := int(p.ly)
	if ly >= FramebufferHeight {
		return
	}

	p.renderBackgroundAndWindow(ly)
	if p.lcdc&0x02 != 0 {
		p.renderSprites(ly)
	}
}

func (p *PPU) renderBackgroundAndWindow(ly int) {
	windowEnabledThisLine := p.lcdc&0x20 != 0 && ly >= int(p.wy)
	windowActive := false

	bgMapBase := addr.TileMap0
	if p.lcdc&0x08 != 0 {
		bgMapBase = addr.TileMap1
	}
	winMapBase := addr.TileMap0
	if p.lcdc&0x40 != 0 {
		winMapBase = addr.TileMap1
	}

	unsignedTileData := p.lcdc&0x10 != 0

	for x := 0; x < FramebufferWidth; x++ {
		var colorIndex byte

		if p.lcdc&0x01 != 0 {
			isWindowPixel := windowEnabledThisLine && x >= int(p.wx)-7
			if isWindowPixel {
				windowActive = true
				wx := x - (int(p.wx) - 7)
				wy := p.windowLine
				colorIndex = p.tilePixel(winMapBase, unsignedTileData, wx, wy)
			} else {
				srcX := pymod(int(p.scx)+x, 256)
				srcY := pymod(int(p.scy)+ly, 256)
				colorIndex = p.tilePixel(bgMapBase, unsignedTileData, srcX, srcY)
			}
		}

		p.bgColorIndex[x] = colorIndex
		shade := (p.bgp >> (colorIndex * 2)) & 0x03
		p.fb.SetPixel(x, ly, p.palette[shade])
	}

	if windowActive {
		p.windowLine++
	}
}

// tilePixel resolves the 2-bit color index at tile-space coordinates
// (srcX, srcY) within the 32x32-tile map starting at mapBase.
func (p *PPU) tilePixel(mapBase uint16, unsignedTileData bool, srcX, srcY int) byte {
	tileX := srcX / 8
	tileY := srcY / 8
	row := srcY % 8
	col := srcX % 8

	tileIndex := p.ReadVRAM(mapBase + uint16(tileY*32+tileX))
	lo, hi := p.tileRowBytes(tileIndex, row, unsignedTileData)
	return pixelColorIndex(lo, hi, col)
}

func (p *PPU) tileRowBytes(tileIndex byte, row int, unsignedTileData bool) (lo, hi byte) {
	var base uint16
	if unsignedTileData {
		base = addr.TileData0 + uint16(tileIndex)*16
	} else {
		base = uint16(int(addr.TileData2) + int(int8(tileIndex))*16)
	}
	rowAddr := base + uint16(row*2)
	return p.ReadVRAM(rowAddr), p.ReadVRAM(rowAddr + 1)
}

type spriteEntry struct {
	index int
	y, x  int
	tile  byte
	attr  byte
}

// spritesOnLine scans OAM in index order and keeps at most 10 sprites
// whose Y range covers ly, per spec.md §4.4's per-scanline sprite limit.
func (p *PPU) spritesOnLine(ly, height int) []spriteEntry {
	var found []spriteEntry
	for i := 0; i < 40 && len(found) < 10; i++ {
		base := i * 4
		y := int(p.OAM[base]) - 16
		if ly < y || ly >= y+height {
			continue
		}
		found = append(found, spriteEntry{
			index: i,
			y:     y,
			x:     int(p.OAM[base+1]) - 8,
			tile:  p.OAM[base+2],
			attr:  p.OAM[base+3],
		})
	}
	return found
}

// renderSprites draws the sprites selected for this line in reverse of
// their OAM discovery order, so the lower-index sprite ends up drawn last
// and wins any pixel overlap — the simplification spec.md §4.4 makes in
// place of hardware's X-coordinate tiebreak.
func (p *PPU) renderSprites(ly int) {
	height := 8
	if p.lcdc&0x04 != 0 {
		height = 16
	}

	sprites := p.spritesOnLine(ly, height)
	for i := len(sprites) - 1; i >= 0; i-- {
		s := sprites[i]

		tileIndex := s.tile
		if height == 16 {
			tileIndex &= 0xFE
		}

		row := ly - s.y
		if s.attr&0x40 != 0 {
			row = height - 1 - row
		}

		// sprite tile data always uses the unsigned $8000 addressing mode
		base := addr.TileData0 + uint16(tileIndex)*16 + uint16(row*2)
		lo := p.ReadVRAM(base)
		hi := p.ReadVRAM(base + 1)

		palette := p.obp0
		if s.attr&0x10 != 0 {
			palette = p.obp1
		}

		for col := 0; col < 8; col++ {
			screenX := s.x + col
			if screenX < 0 || screenX >= FramebufferWidth {
				continue
			}

			c := col
			if s.attr&0x20 != 0 {
				c = 7 - col
			}

			colorIndex := pixelColorIndex(lo, hi, c)
			if colorIndex == 0 {
				continue
			}
			if s.attr&0x80 != 0 && p.bgColorIndex[screenX] != 0 {
				continue
			}

			shade := (palette >> (colorIndex * 2)) & 0x03
			p.fb.SetPixel(screenX, ly, p.palette[shade])
		}
	}
}

func pixelColorIndex(lo, hi byte, col int) byte {
	bit := 7 - uint(col)
	loBit := (lo >> bit) & 1
	hiBit := (hi >> bit) & 1
	return (hiBit << 1) | loBit
}

func pymod(v, m int) int {
	return ((v % m) + m) % m
}
