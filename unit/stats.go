package unit

import (
	"github.com/nstehr/vimy/vimy-sc2/gamedata"
	"github.com/nstehr/vimy/vimy-sc2/ids"
)

// ---- Movement ----

// Speed is the base movement speed of the type.
func (u *Unit) Speed() float32 {
	if d, ok := u.typeData(); ok {
		return d.MovementSpeed
	}
	return 0
}

// RealSpeed folds buffs, researched upgrades and creep into Speed.
// A medivac boost or void ray alignment ends the calculation immediately.
func (u *Unit) RealSpeed() float32 {
	speed := u.Speed()

	if !gamedata.SpeedBuffImmune[u.Type] {
		for _, b := range u.Buffs {
			switch b {
			case ids.MedivacSpeedBoost:
				return speed * gamedata.MedivacBoostMultiplier
			case ids.VoidRaySwarmDamageBoost:
				return speed * gamedata.VoidRayAlignmentMultiplier
			}
			if m, ok := gamedata.SpeedBuffs[b]; ok {
				speed *= m
			}
		}
	}

	mine := u.IsMine()
	if up, ok := gamedata.SpeedUpgrades[u.Type]; ok && u.shared.HasUpgrade(mine, up.Upgrade) {
		speed *= up.Multiplier
	}

	if u.shared.HasCreep(u.Position) {
		if m, ok := gamedata.SpeedOnCreep[u.Type]; ok {
			speed *= m
		}
	} else if u.shared.HasAnyUpgrade(mine) {
		if up, ok := gamedata.OffCreepSpeedUpgrades[u.Type]; ok && u.shared.HasUpgrade(mine, up.Upgrade) {
			speed *= up.Multiplier
		}
	}
	return speed
}

// DistancePerStep is how far the unit travels between two decisions.
func (u *Unit) DistancePerStep() float32 {
	return u.RealSpeed() / gamedata.FramesPerSecond * float32(u.shared.GameStep())
}

// DistanceToWeaponReady is how far the unit travels before it can fire again.
func (u *Unit) DistanceToWeaponReady() float32 {
	var cd float32
	if u.WeaponCooldown != nil {
		cd = *u.WeaponCooldown
	}
	return u.RealSpeed() / gamedata.FramesPerSecond * cd
}

// ---- Weapons ----

// Weapons resolves the weapon set: disguised forms have none, then the
// reference tables, then the form a cocoon turns into, then the table of
// weapons the game data omits.
func (u *Unit) Weapons() []gamedata.Weapon {
	if gamedata.NoWeapons[u.Type] {
		return nil
	}
	if d, ok := u.typeData(); ok && len(d.Weapons) > 0 {
		return d.Weapons
	}
	t := u.Type
	if into, ok := gamedata.CocoonWeapons[t]; ok {
		if d, ok := u.shared.Data().Unit(into); ok && len(d.Weapons) > 0 {
			return d.Weapons
		}
		t = into
	}
	return gamedata.MissedWeapons[t]
}

// WeaponTarget is the combined domain of all weapons, absent if unarmed.
func (u *Unit) WeaponTarget() (gamedata.TargetType, bool) {
	var ground, air bool
	for _, w := range u.Weapons() {
		switch w.Target {
		case gamedata.Ground:
			ground = true
		case gamedata.Air:
			air = true
		case gamedata.Any:
			return gamedata.Any, true
		}
	}
	switch {
	case ground && air:
		return gamedata.Any, true
	case ground:
		return gamedata.Ground, true
	case air:
		return gamedata.Air, true
	}
	return 0, false
}

func (u *Unit) CanAttack() bool { return len(u.Weapons()) > 0 }

func (u *Unit) CanAttackBoth() bool {
	t, ok := u.WeaponTarget()
	return ok && t == gamedata.Any
}

func (u *Unit) CanAttackGround() bool { return u.anyWeaponNot(gamedata.Air) }
func (u *Unit) CanAttackAir() bool    { return u.anyWeaponNot(gamedata.Ground) }

func (u *Unit) anyWeaponNot(excluded gamedata.TargetType) bool {
	for _, w := range u.Weapons() {
		if w.Target != excluded {
			return true
		}
	}
	return false
}

// excludedDomain is the weapon domain that cannot hit target.
func excludedDomain(target *Unit) gamedata.TargetType {
	if target.Flying {
		return gamedata.Ground
	}
	return gamedata.Air
}

// CanAttackUnit reports whether any weapon can hit target. Colossi are
// hittable by ground and air weapons alike.
func (u *Unit) CanAttackUnit(target *Unit) bool {
	if !u.CanAttack() {
		return false
	}
	if gamedata.AlwaysAttackable[target.Type] {
		return true
	}
	return u.anyWeaponNot(excludedDomain(target))
}

func (u *Unit) OnCooldown() bool {
	return u.WeaponCooldown != nil && *u.WeaponCooldown > epsilon
}

// MaxCooldown is the largest weapon cooldown seen for the type this session.
func (u *Unit) MaxCooldown() (float32, bool) {
	return u.shared.MaxCooldown(u.Type)
}

func (u *Unit) firstWeaponNot(excluded gamedata.TargetType) (gamedata.Weapon, bool) {
	for _, w := range u.Weapons() {
		if w.Target != excluded {
			return w, true
		}
	}
	return gamedata.Weapon{}, false
}

// ---- Range ----

func (u *Unit) GroundRange() float32 {
	w, _ := u.firstWeaponNot(gamedata.Air)
	return w.Range
}

func (u *Unit) AirRange() float32 {
	w, _ := u.firstWeaponNot(gamedata.Ground)
	return w.Range
}

// RangeVs is the base range against target, 0 if nothing can hit it.
func (u *Unit) RangeVs(target *Unit) float32 {
	if gamedata.AlwaysAttackable[target.Type] {
		var best float32
		for _, w := range u.Weapons() {
			best = max(best, w.Range)
		}
		return best
	}
	w, _ := u.firstWeaponNot(excludedDomain(target))
	return w.Range
}

// rangeBonus is the researched range extension of the type.
func (u *Unit) rangeBonus() float32 {
	up, ok := gamedata.RangeUpgrades[u.Type]
	if ok && u.shared.HasUpgrade(u.IsMine(), up.Upgrade) {
		return up.Bonus
	}
	return 0
}

func (u *Unit) RealGroundRange() float32 {
	w, ok := u.firstWeaponNot(gamedata.Air)
	if !ok {
		return 0
	}
	return w.Range + u.rangeBonus()
}

func (u *Unit) RealAirRange() float32 {
	w, ok := u.firstWeaponNot(gamedata.Ground)
	if !ok {
		return 0
	}
	return w.Range + u.rangeBonus()
}

func (u *Unit) RealRangeVs(target *Unit) float32 {
	if !u.CanAttackUnit(target) {
		return 0
	}
	return u.RangeVs(target) + u.rangeBonus()
}

// ---- DPS ----

func (u *Unit) GroundDPS() float32 {
	w, _ := u.firstWeaponNot(gamedata.Air)
	return w.DPS()
}

func (u *Unit) AirDPS() float32 {
	w, _ := u.firstWeaponNot(gamedata.Ground)
	return w.DPS()
}

// DPSVs is the undecorated damage per second against target.
func (u *Unit) DPSVs(target *Unit) float32 {
	if gamedata.AlwaysAttackable[target.Type] {
		var best float32
		for _, w := range u.Weapons() {
			best = max(best, w.DPS())
		}
		return best
	}
	w, _ := u.firstWeaponNot(excludedDomain(target))
	return w.DPS()
}

// DamageBonus is the first attribute bonus found on the unit's weapons.
func (u *Unit) DamageBonus() (gamedata.DamageBonus, bool) {
	for _, w := range u.Weapons() {
		if len(w.DamageBonus) > 0 {
			return w.DamageBonus[0], true
		}
	}
	return gamedata.DamageBonus{}, false
}

// ---- In range ----

func (u *Unit) withinRange(target *Unit, rng, gap float32) bool {
	if rng < epsilon {
		return false
	}
	total := u.Radius + target.Radius + rng + gap
	d := u.DistanceSquared(target.Position)
	if u.Type == ids.SiegeTankSieged && d <= gamedata.SiegedMinRangeSquared {
		return false
	}
	return d <= total*total
}

// InRange reports whether target is within base weapon range plus gap.
// A sieged tank cannot fire at anything inside its minimum range.
func (u *Unit) InRange(target *Unit, gap float32) bool {
	return u.withinRange(target, u.RangeVs(target), gap)
}

// InRealRange is InRange with researched range upgrades applied.
func (u *Unit) InRealRange(target *Unit, gap float32) bool {
	return u.withinRange(target, u.RealRangeVs(target), gap)
}

// InRangeOf reports whether u is within attacker's base range.
func (u *Unit) InRangeOf(attacker *Unit, gap float32) bool {
	return attacker.InRange(u, gap)
}

func (u *Unit) InRealRangeOf(attacker *Unit, gap float32) bool {
	return attacker.InRealRange(u, gap)
}
