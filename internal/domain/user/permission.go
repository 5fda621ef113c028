package user

type Permission string

const (
	// Self Management
	PermissionProfileViewOwn Permission = "profile.view_own"

	// Leave
	PermissionLeaveViewOwn   Permission = "leave.view_own"
	PermissionLeaveCreate    Permission = "leave.create"
	PermissionLeaveViewAll   Permission = "leave.view_all"
	PermissionLeaveApprove   Permission = "leave.approve"
	PermissionLeaveCancelAny Permission = "leave.cancel_any"
	PermissionQuotaViewOwn   Permission = "leave_quota.view_own"
	PermissionQuotaManage    Permission = "leave_quota.manage"

	// Study permit
	PermissionStudyPermitViewOwn  Permission = "study_permit.view_own"
	PermissionStudyPermitCreate   Permission = "study_permit.create"
	PermissionStudyPermitViewAll  Permission = "study_permit.view_all"
	PermissionStudyPermitApprove  Permission = "study_permit.approve"
	PermissionStudyPermitComplete Permission = "study_permit.complete"

	// Salary increase
	PermissionSalaryViewOwn Permission = "salary_increase.view_own"
	PermissionSalaryCreate  Permission = "salary_increase.create"
	PermissionSalaryViewAll Permission = "salary_increase.view_all"
	PermissionSalaryApprove Permission = "salary_increase.approve"

	// Pension
	PermissionPensionViewOwn  Permission = "pension.view_own"
	PermissionPensionCreate   Permission = "pension.create"
	PermissionPensionViewAll  Permission = "pension.view_all"
	PermissionPensionApprove  Permission = "pension.approve"
	PermissionPensionComplete Permission = "pension.complete"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RoleInherits lists the roles whose permissions a role also receives.
var RoleInherits = map[Role][]Role{
	RoleAtasan:      {RolePegawai},
	RolePimpinan:    {RoleAtasan},
	RoleKepegawaian: {RoleAtasan},
	RoleAdmin:       {RoleKepegawaian, RolePimpinan},
}

// RolePermissions maps roles to the permissions they add on top of inherited ones.
var RolePermissions = map[Role][]Permission{
	RolePegawai: {
		PermissionProfileViewOwn,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionQuotaViewOwn,
		PermissionStudyPermitViewOwn,
		PermissionStudyPermitCreate,
		PermissionSalaryViewOwn,
		PermissionPensionViewOwn,
		PermissionPensionCreate,
	},
	RoleAtasan: {
		// Approvers see every request they may have to decide
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionStudyPermitViewAll,
		PermissionStudyPermitApprove,
		PermissionSalaryViewAll,
		PermissionSalaryApprove,
		PermissionPensionViewAll,
		PermissionPensionApprove,
		PermissionEmployeeViewAll,
	},
	RolePimpinan: {},
	RoleKepegawaian: {
		PermissionLeaveCancelAny,
		PermissionQuotaManage,
		PermissionStudyPermitComplete,
		PermissionSalaryCreate,
		PermissionPensionComplete,
		PermissionEmployeeManage,
	},
	RoleAdmin: {
		PermissionUserManage,
	},
}
