package constant

const (
	RoleRecruiter    = "recruiter"
	RoleFriends      = "friends"
	RoleLoveInterest = "love-interest"
	RoleEx           = "ex"
	RoleOther        = "other"

	GoalSeeProjects  = "see-projects"
	GoalViewResume   = "view-resume"
	GoalContact      = "contact"
	GoalJustBrowsing = "just-browsing"
)
