package main

import (
	"fmt"
)

// 可移除阈值：被占用的相邻格子少于这个数时，该格子可以移除
const accessThreshold = 4

// 8个方向的相邻偏移，顺序固定：上一行、同一行、下一行，每行从左到右
var neighborOffsets = [8]Cell{
	{-1, -1},
	{0, -1},
	{1, -1},
	{-1, 0},
	{1, 0},
	{-1, 1},
	{0, 1},
	{1, 1},
}

// Cell 是带边框网格里的坐标，X 是列，Y 是行
type Cell struct {
	X, Y int
}

func (c Cell) Add(d Cell) Cell {
	return Cell{c.X + d.X, c.Y + d.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Queue 是容量为2的幂的环形队列，满了自动扩容
type Queue struct {
	values []Cell
	bits   int
	mask   int
	head   int
	tail   int
}

func NewQueueCapacity(initCapacity int) *Queue {
	initCapacityBits := 2
	for 1<<initCapacityBits < initCapacity+1 {
		initCapacityBits++
	}
	return NewQueueBits(initCapacityBits)
}

func NewQueueBits(bits int) *Queue {
	return &Queue{
		values: make([]Cell, 1<<bits),
		bits:   bits,
		mask:   (1 << bits) - 1,
	}
}

func (q *Queue) Enqueue(item Cell) {
	next := (q.tail + 1) & q.mask
	if next == q.head {
		newQueue := NewQueueBits(q.bits + 1)
		newQueue.copyFrom(q)
		*q = *newQueue
		next = q.tail + 1
	}
	q.values[q.tail] = item
	q.tail = next
}

func (q *Queue) Size() int {
	if q.tail < q.head {
		return q.tail + len(q.values) - q.head
	}
	return q.tail - q.head
}

func (q *Queue) copyFrom(x *Queue) {
	if len(q.values) < x.Size()+1 {
		panic(fmt.Errorf("insufficient capacity x.size()=%d len(q.values)=%d", x.Size(), len(q.values)))
	}
	q.head = 0
	if x.tail >= x.head {
		q.tail = copy(q.values, x.values[x.head:x.tail])
	} else {
		n1 := copy(q.values, x.values[x.head:])
		n2 := copy(q.values[n1:], x.values[0:x.tail])
		q.tail = n1 + n2
	}
}

// Each 按出队顺序遍历队列中尚未出队的元素，不改变队列
func (q *Queue) Each(f func(Cell)) {
	for i := q.head; i != q.tail; i = (i + 1) & q.mask {
		f(q.values[i])
	}
}

func (q *Queue) Dequeue() (item Cell, ok bool) {
	if q.head == q.tail {
		return
	}
	item = q.values[q.head]
	q.head = (q.head + 1) & q.mask
	ok = true
	return
}
