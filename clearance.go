package main

// Stats 是一次清理的结果
type Stats struct {
	//第一轮扫描中可以直接移除的格子数
	Accessible int `json:"accessible"`
	//连锁移除完成后一共移除的格子数，包含第一轮
	TotalRemovable int `json:"total_removable"`
}

// 移除发生在哪个阶段
type Phase int

const (
	PhaseSweep   Phase = 1
	PhaseCascade Phase = 2
)

func (p Phase) String() string {
	switch p {
	case PhaseSweep:
		return "sweep"
	case PhaseCascade:
		return "cascade"
	default:
		return "unknown"
	}
}

// Clearance 保存一次清理过程的状态和统计
// 每个 Clearance 只能对一个网格运行一次。
type Clearance struct {
	grid *Grid

	//queued[y*width+x] = true ： 格子已经入队，不会再入队第二次
	queued []bool

	queue *Queue

	//入队过的格子总数，出队不会减少
	enqueued int

	//调用 Accessible 的次数
	Tests int
	//第二轮出队的次数
	Rounds int

	//每移除一个格子调用一次，顺序与入队顺序一致
	Observer func(c Cell, phase Phase)
}

func NewClearance(g *Grid) *Clearance {
	return &Clearance{
		grid:   g,
		queued: make([]bool, len(g.cells)),
		queue:  NewQueueCapacity(len(g.cells) / 4),
	}
}

// Clear 对网格 g 原地执行两轮清理并返回结果
func Clear(g *Grid) Stats {
	return NewClearance(g).Run()
}

// Run 先按行扫描找出所有初始可移除的格子，再从这些格子开始连锁移除，直到队列为空。
func (ctx *Clearance) Run() Stats {
	accessible := ctx.sweep()
	ctx.cascade()
	return Stats{
		Accessible:     accessible,
		TotalRemovable: ctx.enqueued,
	}
}

// sweep 第一轮：扫描时不清空格子，所有判断都基于原始网格，扫描结束后统一清空。
func (ctx *Clearance) sweep() int {
	g := ctx.grid
	for y := 1; y < g.height-1; y++ {
		for x := 1; x < g.width-1; x++ {
			if !g.Occupied(x, y) {
				continue
			}
			ctx.Tests++
			if g.Accessible(x, y) {
				ctx.push(Cell{x, y})
			}
		}
	}

	ctx.queue.Each(func(c Cell) {
		g.SetUnoccupied(c.X, c.Y)
		ctx.notify(c, PhaseSweep)
	})
	return ctx.enqueued
}

// cascade 第二轮：每移除一个格子，只重新检查它的 8 个相邻格子。
// 移除只会减少相邻格子的占用数，所以一个格子一旦可移除就一直可移除，入队一次即可。
func (ctx *Clearance) cascade() {
	g := ctx.grid
	for {
		c, ok := ctx.queue.Dequeue()
		if !ok {
			break
		}
		ctx.Rounds++
		for _, d := range neighborOffsets {
			n := c.Add(d)
			i := g.index(n.X, n.Y)
			if !g.cells[i] || ctx.queued[i] {
				continue
			}
			ctx.Tests++
			if g.Accessible(n.X, n.Y) {
				g.cells[i] = false
				ctx.push(n)
				ctx.notify(n, PhaseCascade)
			}
		}
	}
}

func (ctx *Clearance) push(c Cell) {
	ctx.queued[ctx.grid.index(c.X, c.Y)] = true
	ctx.queue.Enqueue(c)
	ctx.enqueued++
}

func (ctx *Clearance) notify(c Cell, phase Phase) {
	if ctx.Observer != nil {
		ctx.Observer(c, phase)
	}
}

// Queued 判断格子是否入过队
func (ctx *Clearance) Queued(x, y int) bool {
	return ctx.queued[ctx.grid.index(x, y)]
}
