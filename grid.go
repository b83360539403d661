package main

import (
	"bufio"
	"fmt"
	"hash/crc64"
	"io"
)

// 默认代表"占用"的字符，其它字符都视为空
const defaultMarker = '@'

// Grid 代表一个带 1 格边框的占用网格
// 边框格子永远为空，只用于保证内部格子的 8 个相邻格子不会越界。
// 内部格子 (x, y) 满足 1 <= x <= width-2, 1 <= y <= height-2。
type Grid struct {
	//cells[y*width+x] = true ： 格子 (x,y) 被占用
	cells []bool

	//含边框的宽高
	width, height int
}

// NewGrid 创建内部区域为 w*h 的空网格，实际尺寸会加上边框
func NewGrid(w, h int) *Grid {
	if w < 0 || h < 0 {
		panic(fmt.Errorf("invalid grid size %dx%d", w, h))
	}
	width, height := w+2, h+2
	return &Grid{
		cells:  make([]bool, width*height),
		width:  width,
		height: height,
	}
}

// ParseGrid 根据文本建立网格
// 宽度取第一行的长度，高度取行数（最后一行没有换行符也算一行）。
// 超出宽度的字符、超出高度的行会被忽略，'\r' 直接跳过。
func ParseGrid(raw string, marker byte) *Grid {
	w, h := measure(raw)
	g := NewGrid(w, h)

	x, y := 1, 1
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		switch {
		case b == '\n':
			y++
			x = 1
		case b == '\r':
		case x < g.width-1 && y < g.height-1:
			g.cells[g.index(x, y)] = b == marker
			x++
		}
	}
	return g
}

// measure 返回文本的内部宽高（不含边框）
func measure(raw string) (w, h int) {
	w = len(raw)
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\n' {
			w = i
			break
		}
	}
	if w > 0 && raw[w-1] == '\r' {
		w--
	}

	hasChars := false
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\n' {
			h++
			hasChars = false
		} else {
			hasChars = true
		}
	}
	if hasChars {
		h++
	}
	return
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

// IsBorder 判断 (x,y) 是否在边框上
func (g *Grid) IsBorder(x, y int) bool {
	return x == 0 || y == 0 || x == g.width-1 || y == g.height-1
}

func (g *Grid) Occupied(x, y int) bool {
	return g.cells[g.index(x, y)]
}

// Set 占用一个内部格子，边框格子不允许占用
func (g *Grid) Set(x, y int) {
	if g.IsBorder(x, y) {
		panic(fmt.Errorf("cell (%d,%d) is on the border", x, y))
	}
	g.cells[g.index(x, y)] = true
}

// SetUnoccupied 清空格子，重复清空没有副作用
func (g *Grid) SetUnoccupied(x, y int) {
	g.cells[g.index(x, y)] = false
}

// Accessible 统计 8 个相邻格子中被占用的数量，少于阈值返回 true。
// 数到阈值即可提前返回。只应对当前被占用的内部格子调用。
func (g *Grid) Accessible(x, y int) bool {
	filled := 0
	for _, d := range neighborOffsets {
		if g.cells[g.index(x+d.X, y+d.Y)] {
			filled++
			if filled >= accessThreshold {
				return false
			}
		}
	}
	return true
}

// Count 返回被占用的格子总数
func (g *Grid) Count() int {
	n := 0
	for _, filled := range g.cells {
		if filled {
			n++
		}
	}
	return n
}

func (g *Grid) Copy() *Grid {
	g2 := &Grid{
		cells:  make([]bool, len(g.cells)),
		width:  g.width,
		height: g.height,
	}
	copy(g2.cells, g.cells)
	return g2
}

func (g *Grid) Hash() uint64 {
	raw := make([]byte, len(g.cells))
	for i, filled := range g.cells {
		if filled {
			raw[i] = 1
		}
	}
	return crc64.Checksum(raw, crc64Table)
}

var crc64Table = crc64.MakeTable(crc64.ISO)

// Render 输出网格的调试视图
// '~' 边框, 'X' 占用且可移除, '@' 占用但不可移除, '.' 空
func (g *Grid) Render(w io.Writer, title string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "=============================")
	fmt.Fprintln(bw, title)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			switch {
			case g.IsBorder(x, y):
				bw.WriteByte('~')
			case !g.Occupied(x, y):
				bw.WriteByte('.')
			case g.Accessible(x, y):
				bw.WriteByte('X')
			default:
				bw.WriteByte('@')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
