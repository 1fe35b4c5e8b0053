package catalog

import "net/http"

// Endpoints returns the full tool table. The slice is rebuilt per call so
// callers can never mutate the canonical definitions.
func Endpoints() []Endpoint {
	table := make([]Endpoint, 0, len(projectEndpoints)+len(taskEndpoints)+len(eventEndpoints)+len(customerEndpoints)+len(userEndpoints))
	table = append(table, projectEndpoints...)
	table = append(table, taskEndpoints...)
	table = append(table, eventEndpoints...)
	table = append(table, customerEndpoints...)
	table = append(table, userEndpoints...)
	return table
}

// Lookup returns the endpoint with the given tool name.
func Lookup(name string) (Endpoint, bool) {
	for _, ep := range Endpoints() {
		if ep.Name == name {
			return ep, true
		}
	}
	return Endpoint{}, false
}

var projectEndpoints = []Endpoint{
	{
		Name:        "list_projects",
		Description: "List projects in the account. Time estimates (estimated_time) are in hours.",
		Method:      http.MethodGet,
		Path:        "/projects",
		Params: []Param{
			{Name: "limit", Type: TypeNumber, Description: "Maximum number of projects to return."},
			{Name: "offset", Type: TypeNumber, Description: "Number of projects to skip."},
		},
	},
	{
		Name:        "search_projects",
		Description: "Search projects by name.",
		Method:      http.MethodGet,
		Path:        "/projects/search",
		Params: []Param{
			{Name: "term", Type: TypeString, Required: true, Description: "Search term matched against project names."},
		},
	},
	{
		Name:        "get_project",
		Description: "Get one project with its tasks and accumulated totals. Durations (accumulated_time) are in seconds, estimates (estimated_time) in hours.",
		Method:      http.MethodGet,
		Path:        "/projects/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "Project id."},
		},
	},
	{
		Name:        "create_project",
		Description: "Create a new project.",
		Method:      http.MethodPost,
		Path:        "/projects/add",
		Params: []Param{
			{Name: "name", Type: TypeString, Required: true, Description: "Project name."},
			{Name: "customer_id", Type: TypeNumber, Description: "Id of the customer the project belongs to."},
			{Name: "note", Type: TypeString, Description: "Free-form project note."},
			{Name: "estimated_time", Type: TypeNumber, Description: "Time estimate in hours."},
		},
	},
	{
		Name:        "update_project",
		Description: "Update a project. Only supplied fields are changed.",
		Method:      http.MethodPut,
		Path:        "/projects/update/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "Project id."},
			{Name: "name", Type: TypeString, Description: "New project name."},
			{Name: "customer_id", Type: TypeNumber, Description: "Id of the customer the project belongs to."},
			{Name: "note", Type: TypeString, Description: "Free-form project note."},
			{Name: "estimated_time", Type: TypeNumber, Description: "Time estimate in hours."},
		},
	},
	{
		Name:        "close_project",
		Description: "Close a project so no more time can be logged against it.",
		Method:      http.MethodPut,
		Path:        "/projects/close/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "Project id."},
		},
	},
	{
		Name:        "reopen_project",
		Description: "Reopen a previously closed project.",
		Method:      http.MethodPut,
		Path:        "/projects/open/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "Project id."},
		},
	},
}

var taskEndpoints = []Endpoint{
	{
		Name:        "list_tasks",
		Description: "List tasks. Accumulated durations (accumulated_time) are in seconds, estimates (estimated_time) in hours.",
		Method:      http.MethodGet,
		Path:        "/tasks",
		Params: []Param{
			{Name: "project_id", Type: TypeNumber, Description: "Only list tasks of this project."},
			{Name: "state", Type: TypeString, Description: "Filter by task state.", Enum: []string{"open", "closed", "all"}},
		},
	},
	{
		Name:        "search_tasks",
		Description: "Search tasks by name.",
		Method:      http.MethodGet,
		Path:        "/tasks/search",
		Params: []Param{
			{Name: "term", Type: TypeString, Required: true, Description: "Search term matched against task names."},
		},
	},
	{
		Name:        "get_task",
		Description: "Get one task with its accumulated time (accumulated_time, seconds).",
		Method:      http.MethodGet,
		Path:        "/tasks/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "Task id."},
		},
	},
	{
		Name:        "create_task",
		Description: "Create a task in a project and optionally share it with users.",
		Method:      http.MethodPost,
		Path:        "/tasks/share",
		Params: []Param{
			{Name: "name", Type: TypeString, Required: true, Description: "Task name."},
			{Name: "project_id", Type: TypeNumber, Required: true, Description: "Id of the project the task belongs to."},
			{Name: "user_ids", Type: TypeNumberList, Description: "Ids of users the task is shared with."},
			{Name: "estimated_time", Type: TypeNumber, Description: "Time estimate in hours."},
		},
	},
	{
		Name:        "update_task",
		Description: "Update a task. Only supplied fields are changed.",
		Method:      http.MethodPut,
		Path:        "/tasks/update/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "Task id."},
			{Name: "name", Type: TypeString, Description: "New task name."},
			{Name: "estimated_time", Type: TypeNumber, Description: "Time estimate in hours."},
		},
	},
	{
		Name:        "close_task",
		Description: "Close a task so no more time can be logged against it.",
		Method:      http.MethodPut,
		Path:        "/tasks/close/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "Task id."},
		},
	},
	{
		Name:        "reopen_task",
		Description: "Reopen a previously closed task.",
		Method:      http.MethodPut,
		Path:        "/tasks/open/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "Task id."},
		},
	},
	{
		Name:        "start_timer",
		Description: "Start the timer on a task. Fails while another timer is running.",
		Method:      http.MethodPut,
		Path:        "/tasks/track/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "Id of the task to track time against."},
		},
	},
	{
		Name:        "stop_timer",
		Description: "Stop the running timer on a task and record the tracked event.",
		Method:      http.MethodPut,
		Path:        "/tasks/stop/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "Id of the task being tracked."},
		},
	},
	{
		Name:        "delete_task",
		Description: "Delete a task.",
		Method:      http.MethodDelete,
		Path:        "/tasks/delete/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "Task id."},
			{Name: "cascade", Type: TypeBoolean, Description: "Also delete the task's recorded events."},
		},
	},
}

var eventEndpoints = []Endpoint{
	{
		Name:        "list_events",
		Description: "List time events. Durations (duration) are in seconds; dates use YYYY-MM-DD.",
		Method:      http.MethodGet,
		Path:        "/events",
		Params: []Param{
			{Name: "task_id", Type: TypeNumber, Description: "Only list events of this task."},
			{Name: "user_id", Type: TypeNumber, Description: "Only list events of this user."},
			{Name: "from", Type: TypeString, Description: "Start date (YYYY-MM-DD)."},
			{Name: "to", Type: TypeString, Description: "End date (YYYY-MM-DD)."},
			{Name: "billed", Type: TypeBoolean, Description: "Only list billed (true) or unbilled (false) events."},
		},
	},
	{
		Name:        "create_event",
		Description: "Record a time event on a task. Supply either end or duration (seconds).",
		Method:      http.MethodPost,
		Path:        "/events/add",
		Params: []Param{
			{Name: "task_id", Type: TypeNumber, Required: true, Description: "Id of the task the event belongs to."},
			{Name: "start", Type: TypeString, Required: true, Description: "Start time (yyyy-MM-dd HH:mm:ss)."},
			{Name: "end", Type: TypeString, Description: "End time (yyyy-MM-dd HH:mm:ss)."},
			{Name: "duration", Type: TypeNumber, Description: "Duration in seconds, as an alternative to end."},
			{Name: "note", Type: TypeString, Description: "Free-form event note."},
			{Name: "user_id", Type: TypeNumber, Description: "Record the event for this user instead of the authenticated one."},
		},
	},
	{
		Name:        "update_event",
		Description: "Update a time event. Only supplied fields are changed. Durations are in seconds.",
		Method:      http.MethodPut,
		Path:        "/events/update/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "Event id."},
			{Name: "task_id", Type: TypeNumber, Description: "Move the event to this task."},
			{Name: "start", Type: TypeString, Description: "Start time (yyyy-MM-dd HH:mm:ss)."},
			{Name: "end", Type: TypeString, Description: "End time (yyyy-MM-dd HH:mm:ss)."},
			{Name: "duration", Type: TypeNumber, Description: "Duration in seconds."},
			{Name: "note", Type: TypeString, Description: "Free-form event note."},
		},
	},
	{
		Name:        "delete_event",
		Description: "Delete a time event.",
		Method:      http.MethodDelete,
		Path:        "/events/delete/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "Event id."},
			{Name: "cascade", Type: TypeBoolean, Description: "Also delete dependent records of the event."},
		},
	},
	{
		Name:        "mark_events_billed",
		Description: "Flag a set of time events as billed.",
		Method:      http.MethodPut,
		Path:        "/events/billed",
		IDListBody:  true,
		Params: []Param{
			{Name: "ids", Type: TypeIDList, Required: true, Description: "Event ids to flag."},
		},
	},
	{
		Name:        "mark_events_unbilled",
		Description: "Clear the billed flag on a set of time events.",
		Method:      http.MethodPut,
		Path:        "/events/not_billed",
		IDListBody:  true,
		Params: []Param{
			{Name: "ids", Type: TypeIDList, Required: true, Description: "Event ids to flag."},
		},
	},
	{
		Name:        "export_events",
		Description: "Export time events as delimited text. Durations are in seconds; worked_hours columns are in hours.",
		Method:      http.MethodGet,
		Path:        "/events/export",
		Raw:         true,
		Params: []Param{
			{Name: "from", Type: TypeString, Description: "Start date (YYYY-MM-DD)."},
			{Name: "to", Type: TypeString, Description: "End date (YYYY-MM-DD)."},
			{Name: "user_id", Type: TypeNumber, Description: "Only export events of this user."},
			{Name: "separator", Type: TypeString, Description: "Column separator for the exported text."},
		},
	},
}

var customerEndpoints = []Endpoint{
	{
		Name:        "list_customers",
		Description: "List customers in the account.",
		Method:      http.MethodGet,
		Path:        "/customers",
		Params: []Param{
			{Name: "limit", Type: TypeNumber, Description: "Maximum number of customers to return."},
			{Name: "offset", Type: TypeNumber, Description: "Number of customers to skip."},
		},
	},
	{
		Name:        "search_customers",
		Description: "Search customers by name.",
		Method:      http.MethodGet,
		Path:        "/customers/search",
		Params: []Param{
			{Name: "term", Type: TypeString, Required: true, Description: "Search term matched against customer names."},
		},
	},
	{
		Name:        "get_customer",
		Description: "Get one customer with its projects.",
		Method:      http.MethodGet,
		Path:        "/customers/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "Customer id."},
		},
	},
	{
		Name:        "create_customer",
		Description: "Create a new customer.",
		Method:      http.MethodPost,
		Path:        "/customers/add",
		Params: []Param{
			{Name: "name", Type: TypeString, Required: true, Description: "Customer name."},
			{Name: "note", Type: TypeString, Description: "Free-form customer note."},
		},
	},
	{
		Name:        "update_customer",
		Description: "Update a customer. Only supplied fields are changed.",
		Method:      http.MethodPut,
		Path:        "/customers/update/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "Customer id."},
			{Name: "name", Type: TypeString, Description: "New customer name."},
			{Name: "note", Type: TypeString, Description: "Free-form customer note."},
		},
	},
}

var userEndpoints = []Endpoint{
	{
		Name:        "list_users",
		Description: "List users in the account.",
		Method:      http.MethodGet,
		Path:        "/users",
	},
	{
		Name:        "get_user",
		Description: "Get one user.",
		Method:      http.MethodGet,
		Path:        "/users/:id",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "User id."},
		},
	},
	{
		Name:        "list_user_trackables",
		Description: "List the projects and tasks a user may log time against.",
		Method:      http.MethodGet,
		Path:        "/users/:id/trackables",
		Params: []Param{
			{Name: "id", Type: TypeNumber, Required: true, Description: "User id."},
		},
	},
}
