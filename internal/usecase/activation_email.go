package usecase

import "strings"

const activationEmailSubject = "Confirmación de nuevo usuario"

// activationEmailTemplate is the HTML body sent at registration. The
// placeholders mirror the template contract of the client application.
const activationEmailTemplate = `<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Bienvenido, @NAME</h2>
    <p>
      Su cuenta ha sido creada. Para confirmar el registro y activar la
      cuenta, haga clic en el siguiente enlace:
    </p>
    <p>
      <a href="<URL_REDIRECCION>" style="background-color: #1a73e8; color: #fff; padding: 10px 18px; text-decoration: none; border-radius: 4px;">
        Confirmar cuenta
      </a>
    </p>
    <p>Si usted no solicitó este registro, ignore este mensaje.</p>
  </body>
</html>`

// ActivationEmailBody fills the confirmation template with the user's name
// and the token-bearing activation link.
func ActivationEmailBody(name, link string) string {
	body := strings.Replace(activationEmailTemplate, "<URL_REDIRECCION>", link, 1)
	body = strings.Replace(body, "@NAME", name, 1)
	return body
}
