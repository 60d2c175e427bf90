package services

// LevelPolicy derives a level from accumulated XP. A nil policy leaves
// levels to administrators.
type LevelPolicy interface {
	LevelFor(currentLevel, xp int) int
}

// FixedThresholdPolicy grants one level per XPPerLevel and never lowers a level
type FixedThresholdPolicy struct {
	XPPerLevel int
}

func (p FixedThresholdPolicy) LevelFor(currentLevel, xp int) int {
	if p.XPPerLevel <= 0 {
		return currentLevel
	}

	level := 1 + xp/p.XPPerLevel
	if level < currentLevel {
		return currentLevel
	}
	return level
}

// ProgressPercent is the share of xpPerLevel reached by xp, capped to [0, 100]
func ProgressPercent(xp, xpPerLevel int) int {
	if xpPerLevel <= 0 || xp <= 0 {
		return 0
	}

	percent := xp * 100 / xpPerLevel
	if percent > 100 {
		return 100
	}
	return percent
}
