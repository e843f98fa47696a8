package wage

const (
	// unpaidBreakMinutes is deducted from worked time before the overtime
	// threshold is applied, but only for shifts longer than
	// unpaidBreakAfterMinutes.
	unpaidBreakMinutes      = 30
	unpaidBreakAfterMinutes = 360
)

// overtimeMinutes derives overtime from the total elapsed minutes of a
// shift and the policy's daily threshold. It is independent of minute
// classification: overtime minutes stay in their category bucket and
// earn an additional uplift on top.
func overtimeMinutes(totalMinutes int, dailyThresholdMinutes int) int {
	netMinutes := totalMinutes
	if totalMinutes > unpaidBreakAfterMinutes {
		netMinutes -= unpaidBreakMinutes
	}
	if netMinutes > dailyThresholdMinutes {
		return netMinutes - dailyThresholdMinutes
	}
	return 0
}
