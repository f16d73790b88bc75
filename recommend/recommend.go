// Package recommend turns a profiled customer into outreach guidance
// for the account team.
package recommend

import (
	"fmt"

	"retailpulse/rfm"
	U "retailpulse/util"
)

// Playbooks are static for now. A language model endpoint could adapt
// them to individual customers later.
const monthlyHighValuePlaybook = `- Reward consistency and loyalty
This customer purchased %d times in the past year and generates $%s annually. Introduce tiered rewards, priority access to new products, or volume-based incentives to reinforce their regular buying behavior.

- Encourage larger or more strategic orders
With their last purchase occurring %d days ago, prompt reorders using bulk discounts, personalized reorder reminders, or exclusive bundles aligned to their purchase history.

- Protect against churn despite high value
Even high-performing customers can lapse. Assign a dedicated account touchpoint or proactive outreach if recency exceeds expected monthly cadence to preserve long-term value.`

const seasonalPlaybook = `- Time outreach around known buying cycles
This customer last purchased %d days ago, indicating a seasonal pattern. Use historical purchase timing to trigger campaigns just before their typical buying window.

- Increase value during active periods
With %d purchases and $%s annual spend, focus on maximizing order size during peak seasons through bundles, add-ons, or limited-time promotions.

- Maintain light engagement off-season
Avoid over-marketing during inactive periods. Instead, use low-touch content (new arrivals, planning tools, early previews) to stay top-of-mind without driving fatigue.`

const experimentalPlaybook = `- Reduce friction and risk
This customer purchased only %d times in the last year and generates $%s annually. Offer low-commitment incentives such as free shipping, small bundles, or first-repeat discounts to encourage a second purchase.

- Trigger reactivation quickly
With %d days since their last order, deploy short, time-bound reactivation campaigns focused on ease, value, and reassurance rather than upsell.

- Test engagement before heavy investment
Monitor response to lightweight campaigns before allocating higher-cost incentives. Customers who re-engage can be upgraded into higher-touch strategies; non-responders should remain in automated flows.`

// ForCustomer returns the playbook for the customer's segment with the
// profile numbers folded in. Unrecognized segments get the cautious
// lower-value playbook.
func ForCustomer(profile *rfm.CustomerProfile) string {
	monetary := U.FloatToString(profile.Monetary)

	switch profile.Segment {
	case rfm.SegmentMonthlyHighValue:
		return fmt.Sprintf(monthlyHighValuePlaybook, profile.Frequency, monetary, profile.Recency)
	case rfm.SegmentSeasonal:
		return fmt.Sprintf(seasonalPlaybook, profile.Recency, profile.Frequency, monetary)
	}
	return fmt.Sprintf(experimentalPlaybook, profile.Frequency, monetary, profile.Recency)
}
