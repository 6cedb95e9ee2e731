package models

// Subscription plan tiers
const (
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// PlanFeatures maps a plan tier to the features enabled for a new tenant on
// that plan. The mapping is consulted once at tenant creation; later plan
// changes do not re-seed (an explicit admin action is required).
var PlanFeatures = map[string][]string{
	PlanStarter: {
		FeatureRoomBooking,
	},
	PlanProfessional: {
		FeatureRoomBooking,
		FeatureAnalytics,
		FeatureCustomBranding,
	},
	PlanEnterprise: {
		FeatureRoomBooking,
		FeatureAnalytics,
		FeatureCustomBranding,
		FeatureMultiSite,
		FeatureAPIAccess,
		FeatureAuditExport,
		FeaturePrioritySupport,
	},
}

// ValidPlan reports whether plan is a known tier.
func ValidPlan(plan string) bool {
	_, ok := PlanFeatures[plan]
	return ok
}

// MinimumPlanFor returns the cheapest plan tier whose seed list contains the
// named feature. Used to build upgrade prompts when a feature is denied.
func MinimumPlanFor(featureName string) (string, bool) {
	for _, plan := range []string{PlanStarter, PlanProfessional, PlanEnterprise} {
		for _, name := range PlanFeatures[plan] {
			if name == featureName {
				return plan, true
			}
		}
	}
	return "", false
}
