package component

// HealthComponent tracks hit points (pure data)
type HealthComponent struct {
	HP  int
	Max int
}

// Damage subtracts amount, clamping at zero, and reports death
func (h *HealthComponent) Damage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	h.HP -= amount
	if h.HP < 0 {
		h.HP = 0
	}
	return h.HP == 0
}

// Heal adds up to amount without exceeding Max, returns the points restored
func (h *HealthComponent) Heal(amount int) int {
	if amount <= 0 || h.HP >= h.Max {
		return 0
	}
	before := h.HP
	h.HP += amount
	if h.HP > h.Max {
		h.HP = h.Max
	}
	return h.HP - before
}

// Alive reports remaining hit points
func (h *HealthComponent) Alive() bool {
	return h.HP > 0
}
