package extract

// transition 处理一行并返回下一个状态
type transition[P any, S comparable] func(p P, c Classification) S

// transitionTable 以 (当前状态, 行角色) 为键的转移表。
// 表中没有的组合表示忽略该行、状态不变。
type transitionTable[P any, S comparable] map[S]map[Kind]transition[P, S]

func (t transitionTable[P, S]) fire(p P, from S, c Classification) S {
	row, ok := t[from]
	if !ok {
		return from
	}
	fn, ok := row[c.Kind]
	if !ok {
		return from
	}
	return fn(p, c)
}

// handles 表中是否定义了该转移
func (t transitionTable[P, S]) handles(from S, k Kind) bool {
	_, ok := t[from][k]
	return ok
}
