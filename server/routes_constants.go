package server

const (
	RouteUserRegister       = "/api/user/register"
	RouteUserLogin          = "/api/user/login"
	RouteUserLogout         = "/api/user/logout"
	RouteUserTeam           = "/api/user/team"
	RouteUserProfile        = "/api/user/profile"
	RouteUserChangePassword = "/api/user/change-password"
	RouteUserByID           = "/api/user/{id}"
	RouteUserActivate       = "/api/user/{id}/activate"

	RouteTasks       = "/api/task"
	RouteTaskByID    = "/api/task/{id}"
	RouteTaskTrash   = "/api/task/{id}/trash"
	RouteTaskRestore = "/api/task/{id}/restore"
)
