package mail

const welcomeTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>Welcome to Reelworthy!</h1>
    <h2>Hi %s!</h2>
    <p>Thank you for joining our movie reviewer community.</p>
    <p>To get started, please verify your email address:</p>
    <p><a href="%s" style="display: inline-block; padding: 12px 30px; background: #667eea; color: white; text-decoration: none; border-radius: 5px;">Verify Email Address</a></p>
    <p>Or copy and paste this link into your browser:</p>
    <p style="word-break: break-all;">%s</p>
    <p>If you didn't create this account, please ignore this email.</p>
    <p>Happy reviewing!<br>The Reelworthy Team</p>
  </div>
</body>
</html>`

const verifiedTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>Email Verified</h1>
    <h2>Hi %s!</h2>
    <p>Your email address has been verified. You now have full access to your Reelworthy account.</p>
    <p>The Reelworthy Team</p>
  </div>
</body>
</html>`

const resetTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>Password Reset Request</h1>
    <h2>Hi %s,</h2>
    <p>We received a request to reset your password.</p>
    <p><a href="%s" style="display: inline-block; padding: 12px 30px; background: #dc3545; color: white; text-decoration: none; border-radius: 5px;">Reset Password</a></p>
    <p>Or copy and paste this link into your browser:</p>
    <p style="word-break: break-all;">%s</p>
    <p>This link expires in one hour. If you didn't request a reset, you can safely ignore this email.</p>
    <p>The Reelworthy Team</p>
  </div>
</body>
</html>`
