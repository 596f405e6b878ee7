package weapon

// FireFunc 扳机触发时调用的开火函数
type FireFunc func()

// Trigger 扳机，可以绑定零个或多个武器
type Trigger struct {
	bindings []*binding
}

type binding struct {
	fire    FireFunc
	removed bool
}

// Bind 绑定开火函数，返回解绑函数
func (t *Trigger) Bind(fire FireFunc) (unbind func()) {
	b := &binding{fire: fire}
	t.bindings = append(t.bindings, b)
	return func() {
		b.removed = true
	}
}

// Pull 扣动扳机，按绑定顺序调用所有开火函数
func (t *Trigger) Pull() {
	live := t.bindings[:0]
	for _, b := range t.bindings {
		if !b.removed {
			live = append(live, b)
		}
	}
	t.bindings = live

	for _, b := range live {
		b.fire()
	}
}

// Len 已绑定的开火函数数量
func (t *Trigger) Len() int {
	n := 0
	for _, b := range t.bindings {
		if !b.removed {
			n++
		}
	}
	return n
}
