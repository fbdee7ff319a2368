package services

const tenantInvitationEmailHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>You're invited to Bloom Rent</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif; line-height: 1.6; color: #1f2937; background-color: #f0fdf4; margin: 0; padding: 20px; }
  .container { max-width: 600px; margin: 20px auto; background: #ffffff; border: 1px solid #bbf7d0; border-radius: 8px; overflow: hidden; }
  .header { background-color: #15803d; color: white; padding: 20px; text-align: center; }
  .header h1 { margin: 0; font-size: 24px; }
  .content { padding: 30px; text-align: left; }
  .button { display: inline-block; background-color: #15803d; color: #ffffff; padding: 12px 28px; border-radius: 6px; text-decoration: none; font-weight: bold; margin: 20px 0; }
  .footer { background-color: #f0fdf4; padding: 20px; text-align: center; font-size: 12px; color: #6b7280; }
  p { margin-bottom: 1em; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>You're invited to %s</h1>
    </div>
    <div class="content">
      <p>Hi %s,</p>
      <p>Your property owner has invited you to manage your lease at <strong>%s</strong> on Bloom Rent.</p>
      <p style="text-align:center"><a class="button" href="%s">Accept your invitation</a></p>
      <p>This link is single-use and expires on %s. If you weren't expecting this email you can safely ignore it.</p>
    </div>
    <div class="footer">
      © %d Bloom Rent. All rights reserved.
    </div>
  </div>
</body>
</html>`

const invitationRevokedEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif; line-height: 1.6; color: #1f2937; background-color: #f0fdf4; margin: 0; padding: 20px; }
  .container { max-width: 600px; margin: 20px auto; background: #ffffff; border: 1px solid #bbf7d0; border-radius: 8px; padding: 30px; }
  .footer { margin-top: 20px; font-size: 12px; color: #6b7280; text-align: center; }
  p { margin-bottom: 1em; }
</style>
</head>
<body>
  <div class="container">
    <p>Hi %s,</p>
    <p>The invitation to join <strong>%s</strong> on Bloom Rent has been withdrawn. Any previous invitation links will no longer work.</p>
    <p>If you believe this was a mistake, please contact your property owner.</p>
    <div class="footer">
      © %d Bloom Rent. All rights reserved.
    </div>
  </div>
</body>
</html>`
