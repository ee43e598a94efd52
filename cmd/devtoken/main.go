// devtoken 签发本地联调用的 Access Token
//
// 生产环境的 Token 由认证服务签发，本工具只读取相同的 auth 配置
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"campus-timetable/config"
	"campus-timetable/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("TIMETABLE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	cli := &commandLine{jwtMgr: jwt.NewManager(&cfg.Auth), out: os.Stdout}
	if err := cli.run(os.Args); err != nil {
		if errors.Is(err, errHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
