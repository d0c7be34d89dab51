package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/forohub/internal/common"
)

const topicsPageSize = 10

func (a *App) Register(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Register(ctx, userName, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %d)\n", u.UserName, u.ID)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, userName, password); err != nil {
		return err
	}

	a.userName = userName
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(context.Context) error {
	a.api.Logout()
	a.userName = ""
	return nil
}

func (a *App) Topics(ctx context.Context, page int) error {
	topics, err := a.api.ListTopics(ctx, page, topicsPageSize)
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		fmt.Fprintln(a.out, "No topics")
		return nil
	}
	for _, t := range topics {
		fmt.Fprintf(a.out, "%6d  %-6s  %s  [%s]\n", t.ID, t.Status, t.Title, t.Course)
	}
	return nil
}

func (a *App) Topic(ctx context.Context, id int64) error {
	t, err := a.api.GetTopic(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "#%d %s [%s, %s]\n%s\n%s\n", t.ID, t.Title, t.Course, t.Status,
		t.CreationDate.Format(time.DateTime), t.Message)
	return nil
}

func (a *App) Post(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	course, err := GetSimpleText(a.reader, "Course", a.out)
	if err != nil {
		return err
	}
	message, err := GetMultiline(a.reader, "Message", a.out)
	if err != nil {
		return err
	}

	t, err := a.api.CreateTopic(ctx, title, message, course)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Topic %d created\n", t.ID)
	return nil
}

func (a *App) Respond(ctx context.Context, topicID int64) error {
	solution, err := GetMultiline(a.reader, "Solution", a.out)
	if err != nil {
		return err
	}

	r, err := a.api.CreateResponse(ctx, topicID, solution)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Response %d added to %q\n", r.ID, r.TopicTitle)
	return nil
}

func (a *App) Responses(ctx context.Context, topicID int64) error {
	list, err := a.api.ListResponses(ctx, topicID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No responses")
		return nil
	}
	for _, r := range list {
		fmt.Fprintf(a.out, "#%d %s (%s)\n%s\n\n", r.ID, r.AuthorName, r.CreationDate.Format(time.DateTime), r.Solution)
	}
	return nil
}

// Passwd changes the password. The server invalidates the current token,
// so the session ends and the user has to log in again.
func (a *App) Passwd(ctx context.Context) error {
	oldPassword, err := GetPassword("Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)

	newPassword, err := GetPassword("New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	if err := a.api.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return err
	}

	a.userName = ""
	fmt.Fprintln(a.out, "Password changed, please log in again")
	return nil
}
