// Package ppu implements the NES Picture Processing Unit (2C02): the
// scanline/dot timing machine that renders background tiles and sprites
// and raises NMI at vblank (spec.md §4.7).
package ppu

import "nesgo/internal/cartridge"

// Cartridge is the subset of *cartridge.Cartridge the PPU needs: CHR
// access and nametable mirroring.
type Cartridge interface {
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
	Mirror() cartridge.MirrorMode
}

// pixel is an intermediate background or sprite sample before compositing.
type pixel struct {
	colorIndex  uint8
	paletteIdx  uint8
	behindBG    bool
	isSpriteZero bool
	transparent bool
}

// PPU is the NES Picture Processing Unit.
type PPU struct {
	cart Cartridge

	// CPU-visible register latches (spec.md §3/§4.7).
	ctrl    uint8
	mask    uint8
	status  uint8
	oamAddr uint8

	// Loopy scroll state: v (current VRAM address), t (temporary VRAM
	// address), x (fine X scroll), w (write toggle) — spec.md §9 Open
	// Question 1 calls for exactly this canonical model.
	v, t uint16
	x    uint8
	w    bool

	readBuffer uint8 // buffered PPUDATA read

	nametable  [0x800]uint8
	paletteRAM [32]uint8
	oam        [256]uint8

	secondaryOAM   [8 * 4]uint8
	secondaryIdx   [8]uint8
	spriteCount    int
	sprite0OnLine  bool

	dot      int
	scanline int
	oddFrame bool

	pendingNMI     bool
	frameComplete  bool

	frameBuffer [256 * 240]uint32
}

// New returns a PPU wired to cart for CHR/mirroring access.
func New(cart Cartridge) *PPU {
	p := &PPU{cart: cart}
	p.Reset()
	return p
}

// Reset puts the PPU in its post-power-on state.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status, p.oamAddr = 0, 0, 0, 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuffer = 0
	p.dot, p.scanline = 0, 0
	p.oddFrame = false
	p.pendingNMI, p.frameComplete = false, false
	for i := range p.oam {
		p.oam[i] = 0
	}
	for i := range p.frameBuffer {
		p.frameBuffer[i] = 0
	}
}

// Framebuffer returns the 256x240 packed-RGB frame buffer (spec.md §6).
func (p *PPU) Framebuffer() *[256 * 240]uint32 { return &p.frameBuffer }

// ConsumeNMI reports and clears a pending NMI request, so the CPU (which
// polls rather than being called back into, per spec.md §9) sees each
// vblank-entry edge exactly once.
func (p *PPU) ConsumeNMI() bool {
	if p.pendingNMI {
		p.pendingNMI = false
		return true
	}
	return false
}

// ConsumeFrameComplete reports and clears the end-of-frame flag the
// facade's run loop polls (spec.md §2).
func (p *PPU) ConsumeFrameComplete() bool {
	if p.frameComplete {
		p.frameComplete = false
		return true
	}
	return false
}

// ReadRegister reads a CPU-visible register at $2000-$2007 (spec.md §4.7).
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address & 7 {
	case 2: // PPUSTATUS
		value := p.status&0xE0 | (p.lastWritten() & 0x1F)
		p.status &^= 0x80 // clear vblank
		p.w = false
		return value
	case 4: // OAMDATA
		return p.oam[p.oamAddr]
	case 7: // PPUDATA
		return p.readData()
	default: // write-only registers read back open-bus-ish last value
		return p.lastWritten()
	}
}

// lastWritten approximates open-bus low bits with the last value written
// to PPUCTRL, as the teacher's ppu.go and rust-nes both do
// (SPEC_FULL.md §13).
func (p *PPU) lastWritten() uint8 { return p.ctrl }

// WriteRegister handles a CPU write at $2000-$2007.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch address & 7 {
	case 0: // PPUCTRL
		p.ctrl = value
		p.t = (p.t & 0xF3FF) | ((uint16(value) & 0x03) << 10)
		if p.ctrl&0x80 != 0 && p.status&0x80 != 0 {
			p.pendingNMI = true
		}
	case 1: // PPUMASK
		p.mask = value
	case 3: // OAMADDR
		p.oamAddr = value
	case 4: // OAMDATA
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 5: // PPUSCROLL
		if !p.w {
			p.t = (p.t & 0xFFE0) | uint16(value>>3)
			p.x = value & 0x07
		} else {
			p.t = (p.t & 0x8FFF) | (uint16(value&0x07) << 12)
			p.t = (p.t & 0xFC1F) | (uint16(value&0xF8) << 2)
		}
		p.w = !p.w
	case 6: // PPUADDR
		if !p.w {
			p.t = (p.t & 0x00FF) | (uint16(value&0x3F) << 8)
		} else {
			p.t = (p.t & 0xFF00) | uint16(value)
			p.v = p.t
		}
		p.w = !p.w
	case 7: // PPUDATA
		p.writeData(value)
	}
}

// WriteOAM writes OAM directly, used by the Bus for OAM DMA (spec.md §4.4).
func (p *PPU) WriteOAM(address uint8, value uint8) { p.oam[address] = value }

// OAMAddr exposes the current OAM address the DMA copy starts from.
func (p *PPU) OAMAddr() uint8 { return p.oamAddr }

func (p *PPU) vramStep() uint16 {
	if p.ctrl&0x04 != 0 {
		return 32
	}
	return 1
}

func (p *PPU) readData() uint8 {
	addr := p.v & 0x3FFF
	var data uint8
	if addr >= 0x3F00 {
		data = p.readPalette(addr)
		p.readBuffer = p.readVRAM(addr & 0x2FFF)
	} else {
		data = p.readBuffer
		p.readBuffer = p.readVRAM(addr)
	}
	p.v = (p.v + p.vramStep()) & 0x7FFF
	return data
}

func (p *PPU) writeData(value uint8) {
	addr := p.v & 0x3FFF
	if addr >= 0x3F00 {
		p.writePalette(addr, value)
	} else {
		p.writeVRAM(addr, value)
	}
	p.v = (p.v + p.vramStep()) & 0x7FFF
}

// readVRAM/writeVRAM decode $0000-$3EFF per spec.md §4.7's VRAM table.
func (p *PPU) readVRAM(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.cart.ReadCHR(addr)
	case addr < 0x3F00:
		return p.nametable[p.nametableIndex(addr)]
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) writeVRAM(addr uint16, value uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.cart.WriteCHR(addr, value)
	case addr < 0x3F00:
		p.nametable[p.nametableIndex(addr)] = value
	default:
		p.writePalette(addr, value)
	}
}

// nametableIndex maps a $2000-$3EFF address into the 2KiB nametable RAM
// according to the cartridge's mirroring mode (spec.md §4.7).
func (p *PPU) nametableIndex(addr uint16) uint16 {
	addr = (addr - 0x2000) & 0x0FFF
	table := addr >> 10
	offset := addr & 0x03FF
	var physical uint16
	switch p.cart.Mirror() {
	case cartridge.MirrorVertical:
		physical = table & 1
	default: // horizontal
		physical = (table >> 1) & 1
	}
	return physical*0x400 + offset
}

// paletteIndex folds $3F00-$3FFF into the 32-byte palette RAM, applying
// the four background-color hardware mirrors (spec.md §4.7, invariant 4).
func paletteIndex(addr uint16) uint16 {
	idx := (addr - 0x3F00) & 0x1F
	if idx&0x13 == 0x10 {
		idx &= 0x0F
	}
	return idx
}

func (p *PPU) readPalette(addr uint16) uint8  { return p.paletteRAM[paletteIndex(addr)] }
func (p *PPU) writePalette(addr uint16, v uint8) { p.paletteRAM[paletteIndex(addr)] = v }

// Step advances the PPU by exactly one dot (spec.md §4.7).
func (p *PPU) Step() {
	if p.scanline == 241 && p.dot == 1 {
		p.status |= 0x80
		if p.ctrl&0x80 != 0 {
			p.pendingNMI = true
		}
	}
	if p.scanline == 261 && p.dot == 1 {
		p.status &^= (0x80 | 0x40 | 0x20)
	}

	// Sprite evaluation for the whole scanline is done in bulk at dot 0,
	// before any pixel of that scanline is rendered (spec.md §4.7:
	// "acceptable simplification" of the hardware's cycle-by-cycle scan).
	if p.dot == 0 && p.scanline >= 0 && p.scanline < 240 {
		p.evaluateSprites(p.scanline)
	}
	if p.scanline <= 239 {
		p.renderDot()
	}

	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 261 {
			p.scanline = 0
			p.oddFrame = !p.oddFrame
			p.frameComplete = true
		}
	}
}

func (p *PPU) backgroundEnabled() bool { return p.mask&0x08 != 0 }
func (p *PPU) spritesEnabled() bool    { return p.mask&0x10 != 0 }

func (p *PPU) renderDot() {
	if p.dot < 1 || p.dot > 256 || p.scanline < 0 || p.scanline > 239 {
		return
	}
	x := p.dot - 1
	y := p.scanline

	var bg, sp pixel
	bg.transparent = true
	sp.transparent = true
	if p.backgroundEnabled() {
		bg = p.backgroundPixel(x, y)
	}
	if p.spritesEnabled() {
		sp = p.spritePixel(x, y)
	}

	if !bg.transparent && !sp.transparent && sp.isSpriteZero && x != 255 {
		p.status |= 0x40
	}

	p.frameBuffer[y*256+x] = p.composite(bg, sp)
}

func (p *PPU) backgroundPixel(x, y int) pixel {
	scrollX := int(p.t&0x1F)<<3 + int(p.x)
	scrollY := int((p.t>>5)&0x1F)<<3 + int((p.t>>12)&0x07)
	nametable := int((p.t >> 10) & 0x03)

	worldX := x + scrollX
	worldY := y + scrollY
	if worldX >= 256 {
		nametable ^= 1
		worldX -= 256
	}
	if worldY >= 240 {
		nametable ^= 2
		worldY -= 240
	}
	tileX, tileY := worldX>>3, worldY>>3
	fineX, fineY := worldX&7, worldY&7

	nametableAddr := 0x2000 | uint16(nametable&3)<<10 | uint16(tileY*32+tileX)
	tileID := p.readVRAM(nametableAddr)

	attrAddr := 0x23C0 | uint16(nametable&3)<<10 | uint16((tileY>>2)*8+(tileX>>2))
	attrByte := p.readVRAM(attrAddr)
	quadrant := ((tileY & 2) | (tileX&2)>>1)
	paletteSeg := (attrByte >> (quadrant * 2)) & 0x03

	patternBase := uint16(0)
	if p.ctrl&0x10 != 0 {
		patternBase = 0x1000
	}
	patternAddr := patternBase + uint16(tileID)*16 + uint16(fineY)
	lo := p.readVRAM(patternAddr)
	hi := p.readVRAM(patternAddr + 8)
	shift := uint(7 - fineX)
	colorIndex := ((hi>>shift)&1)<<1 | (lo>>shift)&1

	return pixel{
		colorIndex:  colorIndex,
		paletteIdx:  paletteSeg,
		transparent: colorIndex == 0,
	}
}

func (p *PPU) spriteHeight() int {
	if p.ctrl&0x20 != 0 {
		return 16
	}
	return 8
}

// evaluateSprites scans OAM for sprites visible on scanline and fills
// secondary OAM, done in bulk at dot 0 of that scanline per spec.md §4.7.
func (p *PPU) evaluateSprites(scanline int) {
	p.spriteCount = 0
	p.sprite0OnLine = false
	height := p.spriteHeight()

	for i := 0; i < 64; i++ {
		base := i * 4
		spriteY := int(p.oam[base])
		if scanline < spriteY+1 || scanline >= spriteY+1+height {
			continue
		}
		if p.spriteCount >= 8 {
			p.status |= 0x20 // sprite overflow
			break
		}
		dst := p.spriteCount * 4
		copy(p.secondaryOAM[dst:dst+4], p.oam[base:base+4])
		p.secondaryIdx[p.spriteCount] = uint8(i)
		if i == 0 {
			p.sprite0OnLine = true
		}
		p.spriteCount++
	}
}

func (p *PPU) spritePixel(x, y int) pixel {
	height := p.spriteHeight()
	for i := 0; i < p.spriteCount; i++ {
		base := i * 4
		spriteY := int(p.secondaryOAM[base])
		tile := p.secondaryOAM[base+1]
		attr := p.secondaryOAM[base+2]
		spriteX := int(p.secondaryOAM[base+3])

		if x < spriteX || x >= spriteX+8 {
			continue
		}
		row := y - (spriteY + 1)
		if row < 0 || row >= height {
			continue
		}
		col := x - spriteX
		if attr&0x40 != 0 {
			col = 7 - col
		}
		if attr&0x80 != 0 {
			row = height - 1 - row
		}

		patternBase := uint16(0)
		if height == 8 {
			if p.ctrl&0x08 != 0 {
				patternBase = 0x1000
			}
		} else {
			if tile&1 != 0 {
				patternBase = 0x1000
			}
			tile &^= 1
			if row >= 8 {
				tile++
				row -= 8
			}
		}
		patternAddr := patternBase + uint16(tile)*16 + uint16(row)
		lo := p.readVRAM(patternAddr)
		hi := p.readVRAM(patternAddr + 8)
		shift := uint(7 - col)
		colorIndex := ((hi>>shift)&1)<<1 | (lo>>shift)&1
		if colorIndex == 0 {
			continue
		}
		return pixel{
			colorIndex:   colorIndex,
			paletteIdx:   attr & 0x03,
			behindBG:     attr&0x20 != 0,
			isSpriteZero: p.secondaryIdx[i] == 0 && p.sprite0OnLine,
			transparent:  false,
		}
	}
	return pixel{transparent: true}
}

// composite combines a background and sprite sample into a final RGB
// color per spec.md §4.7 step 3.
func (p *PPU) composite(bg, sp pixel) uint32 {
	color := func(paletteBase uint16, seg, idx uint8) uint32 {
		addr := paletteBase
		if idx != 0 {
			addr += uint16(seg)*4 + uint16(idx)
		}
		return p.grayscale(rgbOf(p.readPalette(addr)))
	}

	switch {
	case sp.transparent && bg.transparent:
		return p.grayscale(rgbOf(p.readPalette(0x3F00)))
	case sp.transparent:
		return color(0x3F00, bg.paletteIdx, bg.colorIndex)
	case bg.transparent:
		return color(0x3F10, sp.paletteIdx, sp.colorIndex)
	case sp.behindBG:
		return color(0x3F00, bg.paletteIdx, bg.colorIndex)
	default:
		return color(0x3F10, sp.paletteIdx, sp.colorIndex)
	}
}

// grayscale applies PPUMASK bit 0 (SPEC_FULL.md §13 supplemented feature).
func (p *PPU) grayscale(rgb uint32) uint32 {
	if p.mask&0x01 != 0 {
		return rgb & 0x303030
	}
	return rgb
}
