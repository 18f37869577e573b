// @title G-code Adapter API
// @version 1.0.0
// @description API для генерации управляющих программ и их адаптации под системы ЧПУ.
// @host localhost:8080
// @BasePath /api/v1
package main

import "github.com/iwtcode/gcodeAdapter/internal/app"

func main() {
	// Создаем и запускаем новый экземпляр приложения fx
	app.New().Run()
}
