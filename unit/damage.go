package unit

import (
	"github.com/nstehr/vimy/vimy-sc2/gamedata"
	"github.com/nstehr/vimy/vimy-sc2/ids"
)

// CalcTarget is what CalculateWeaponStats resolves damage against: a
// concrete unit, or a profile of a target domain and attributes when no
// unit exists yet.
type CalcTarget struct {
	unit       *Unit
	domain     gamedata.TargetType
	attributes []gamedata.Attribute
}

// Against targets a concrete unit.
func Against(t *Unit) CalcTarget { return CalcTarget{unit: t} }

// AgainstProfile targets anything in domain carrying attrs. Domain Any
// lets every weapon take part.
func AgainstProfile(domain gamedata.TargetType, attrs ...gamedata.Attribute) CalcTarget {
	return CalcTarget{domain: domain, attributes: attrs}
}

// defense is the resolved defensive state of a concrete target.
type defense struct {
	armor       int32
	shieldArmor int32
	guardian    bool
	health      *uint32
	shield      *uint32
}

// CalculateWeaponStats returns the damage per second and range of the
// weapon that deals the most total damage to target in one use, with every
// upgrade, buff and debuff on both sides applied. DPS is 0 when the chosen
// weapon has no attack interval.
func (u *Unit) CalculateWeaponStats(target CalcTarget) (dps, rng float32) {
	weapons := u.Weapons()
	if len(weapons) == 0 {
		return 0, 0
	}
	mine := u.IsMine()

	var (
		excluded      gamedata.TargetType
		attrs         []gamedata.Attribute
		armoredDebuff bool
		def           *defense
	)
	if t := target.unit; t != nil {
		def = u.defenseOf(t, !mine)
		attrs = t.Attributes()
		armoredDebuff = t.HasBuff(gamedata.ArmoredDamageDebuff)
		excluded = excludedDomain(t)
		if gamedata.AlwaysAttackable[t.Type] {
			excluded = gamedata.Any
		}
	} else {
		attrs = target.attributes
		switch target.domain {
		case gamedata.Ground:
			excluded = gamedata.Air
		case gamedata.Air:
			excluded = gamedata.Ground
		default:
			excluded = gamedata.Any
		}
	}

	speedMod := float32(1)
	for _, b := range u.Buffs {
		if m, ok := gamedata.AttackIntervalBuffs[b]; ok {
			speedMod *= m
		}
	}
	var rangeMod float32
	if u.shared.HasAnyUpgrade(mine) {
		if up, ok := gamedata.AttackSpeedUpgrades[u.Type]; ok && u.shared.HasUpgrade(mine, up.Upgrade) {
			speedMod /= up.Multiplier
		}
		if up, ok := gamedata.RangeUpgrades[u.Type]; ok && u.shared.HasUpgrade(mine, up.Upgrade) {
			rangeMod += up.Bonus
		}
	}

	var (
		found    bool
		best     uint32
		interval float32
	)
	for _, w := range weapons {
		if excluded != gamedata.Any && w.Target == excluded {
			continue
		}
		up := gamedata.DamageBonusPerUpgrade[u.Type][w.Target]
		damage := w.Damage + u.AttackUpgradeLevel*up.PerLevel()
		damage += u.attributeBonus(w, up, attrs, mine, armoredDebuff)
		wRange := w.Range + rangeMod

		var total uint32
		if def != nil {
			total = def.absorb(damage, w.Attacks, wRange)
		} else {
			total = damage * w.Attacks
		}

		// Ties go to the later weapon.
		if !found || total >= best {
			found = true
			best = total
			interval = w.Speed * speedMod
			rng = wRange
		}
	}
	if !found || interval == 0 {
		return 0, rng
	}
	return float32(best) / interval, rng
}

// defenseOf resolves t's armor values. upgradesMine selects which upgrade
// set belongs to t's owner.
func (u *Unit) defenseOf(t *Unit, upgradesMine bool) *defense {
	d := &defense{
		armor:       t.Armor() + int32(t.ArmorUpgradeLevel),
		shieldArmor: int32(t.ShieldUpgradeLevel),
		guardian:    t.HasBuff(ids.GuardianShield),
		health:      t.Health,
		shield:      t.Shield,
	}
	if t.HasBuff(gamedata.ArmorReductionDebuff) {
		d.armor -= gamedata.ArmorReductionPenalty
		d.shieldArmor -= gamedata.ArmorReductionPenalty
	}
	if u.shared.HasAnyUpgrade(upgradesMine) {
		if t.Race().IsTerran() {
			up := gamedata.TerranStructureArmor
			if t.IsStructure() && u.shared.HasUpgrade(upgradesMine, up.Upgrade) {
				d.armor += up.Bonus
			}
		} else if up, ok := gamedata.UnitArmorUpgrades[t.Type]; ok && u.shared.HasUpgrade(upgradesMine, up.Upgrade) {
			d.armor += up.Bonus
		}
	}
	return d
}

// attributeBonus is the largest bonus w deals against any of attrs. Bonuses
// for several matching attributes never stack.
func (u *Unit) attributeBonus(w gamedata.Weapon, up gamedata.UpgradeDamage, attrs []gamedata.Attribute, mine, armoredDebuff bool) uint32 {
	var best uint32
	for _, b := range w.DamageBonus {
		if !hasAttr(attrs, b.Attribute) {
			continue
		}
		bonus := b.Bonus + u.AttackUpgradeLevel*up.Bonus[b.Attribute]
		if ab, ok := gamedata.AttributeBonusUpgrades[u.Type]; ok && ab.Attribute == b.Attribute && u.shared.HasUpgrade(mine, ab.Upgrade) {
			bonus += ab.Bonus
		}
		if b.Attribute == gamedata.Armored && armoredDebuff {
			bonus += gamedata.ArmoredDamageDebuffBonus
		}
		best = max(best, bonus)
	}
	return best
}

func hasAttr(attrs []gamedata.Attribute, a gamedata.Attribute) bool {
	for _, have := range attrs {
		if have == a {
			return true
		}
	}
	return false
}

// perAttack is the damage one strike deals through armor. Armor never
// reduces a strike below 1.
func perAttack(damage uint32, armor int32) uint32 {
	return uint32(max(1, int64(damage)-int64(armor)))
}

// absorb plays attacks strikes of damage against the shield and then the
// health of the defender and returns the total dealt. Shield takes whole
// strikes until it is gone; what overflows the last shield strike carries
// into health. Health takes strikes until it would be exhausted. Absent or
// empty pools take nothing.
func (d *defense) absorb(damage, attacks uint32, wRange float32) uint32 {
	shieldArmor, armor := d.shieldArmor, d.armor
	if d.guardian && wRange >= gamedata.GuardianShieldMinRange {
		shieldArmor += gamedata.GuardianShieldBonus
		armor += gamedata.GuardianShieldBonus
	}

	left := attacks
	var shieldDealt, healthDealt uint32
	if d.shield != nil && *d.shield > 0 {
		strike := perAttack(damage, shieldArmor)
		for left > 0 && shieldDealt < *d.shield {
			shieldDealt += strike
			left--
		}
		if shieldDealt > *d.shield {
			healthDealt = shieldDealt - *d.shield
			shieldDealt = *d.shield
		}
	}
	if d.health != nil && *d.health > 0 {
		strike := perAttack(damage, armor)
		for left > 0 && healthDealt < *d.health {
			healthDealt += strike
			left--
		}
	}
	return shieldDealt + healthDealt
}

// CalculateWeaponAbstract resolves against a target profile.
func (u *Unit) CalculateWeaponAbstract(domain gamedata.TargetType, attrs ...gamedata.Attribute) (dps, rng float32) {
	return u.CalculateWeaponStats(AgainstProfile(domain, attrs...))
}

// RealWeapon is CalculateWeaponStats against a concrete unit.
func (u *Unit) RealWeapon(target *Unit) (dps, rng float32) {
	return u.CalculateWeaponStats(Against(target))
}

// RealGroundWeapon is the resolved ground weapon against no particular
// attributes.
func (u *Unit) RealGroundWeapon() (dps, rng float32) {
	return u.CalculateWeaponStats(AgainstProfile(gamedata.Ground))
}

func (u *Unit) RealAirWeapon() (dps, rng float32) {
	return u.CalculateWeaponStats(AgainstProfile(gamedata.Air))
}

// RealWeaponVs resolves against the profile of target's domain and
// attributes, ignoring its current vitals and armor.
func (u *Unit) RealWeaponVs(target *Unit) (dps, rng float32) {
	domain := gamedata.Ground
	switch {
	case gamedata.AlwaysAttackable[target.Type]:
		domain = gamedata.Any
	case target.Flying:
		domain = gamedata.Air
	}
	return u.CalculateWeaponStats(AgainstProfile(domain, target.Attributes()...))
}
