/*
Package tasksdk provides a client SDK for the task tracking service.

# Overview

The package is organized around two types:

  - SDKClient: unauthenticated operations (register, login, health probes)
  - Session: operations performed as a logged-in user

	client := tasksdk.NewSDKClient("http://localhost:3000")

	user, err := client.Register(ctx, "me@example.com", "Password123")

	session, err := client.Login(ctx, "me@example.com", "Password123")

	task, err := session.CreateTask(ctx, tasksdk.CreateTaskRequest{Title: "Buy milk"})

	page, err := session.ListTasks(ctx, tasksdk.ListOptions{Status: "done", Limit: 20})

# Error Handling

Every non-2xx response becomes an *APIError carrying the status code and the
server's message:

	_, err := session.GetTask(ctx, 42)
	if tasksdk.StatusCode(err) == http.StatusNotFound {
		// gone
	}

# Thread Safety

SDKClient and Session hold no mutable state after construction and are safe
for concurrent use.
*/
package tasksdk
