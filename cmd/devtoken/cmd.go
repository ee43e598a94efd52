package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"campus-timetable/pkg/jwt"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	jwtMgr *jwt.Manager
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  issue -user USER_ID -role admin|teacher|student [-staff STAFF_ID] [-batch BATCH_ID]")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	issueCmd := flag.NewFlagSet("issue", flag.ContinueOnError)
	issueCmd.SetOutput(cli.out)
	userID := issueCmd.String("user", "", "用户 ID")
	role := issueCmd.String("role", "", "角色：admin / teacher / student")
	staffID := issueCmd.String("staff", "", "教师的 staff_id")
	batchID := issueCmd.String("batch", "", "学生所在班级的 batch_id")

	switch args[1] {
	case "issue":
		if err := issueCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *userID == "" || *role == "" {
			issueCmd.Usage()
			return errHelp
		}
		return cli.issue(jwt.Identity{UserID: *userID, Role: *role, StaffID: *staffID, BatchID: *batchID})
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) issue(id jwt.Identity) error {
	switch id.Role {
	case jwt.RoleAdmin:
	case jwt.RoleTeacher:
		if id.StaffID == "" {
			return errors.New("teacher 角色需要 -staff")
		}
	case jwt.RoleStudent:
		if id.BatchID == "" {
			return errors.New("student 角色需要 -batch")
		}
	default:
		return fmt.Errorf("未知角色 %q", id.Role)
	}

	token, err := cli.jwtMgr.GenerateAccessToken(id)
	if err != nil {
		return fmt.Errorf("签发 Token 失败: %w", err)
	}
	fmt.Fprintln(cli.out, token)
	return nil
}
